// Package keyindex maps content keys to atlas packing IDs.
//
// Producers such as the glyph and image caches record which packing ID
// holds the bitmap for a content key, so repeated requests reuse the packed
// entry instead of rasterizing and inserting it again.
//
//	idx := keyindex.New[glyph.Info, metrics]()
//	idx.Set(info, item.ID, m)
//	id, m, ok := idx.Get(info)
//
// The index never owns atlas entries: an ID may be evicted from its atlas
// at any time, and callers must confirm it with the atlas before use. Prune
// drops entries whose IDs no longer resolve.
//
// # Thread Safety
//
// Index is not safe for concurrent use.
package keyindex
