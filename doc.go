// Package atlas provides texture atlases for cached glyph and image
// rendering.
//
// # Overview
//
// A [TextureAtlas] owns a square CPU-side staging texture and a
// [boxpack.Packer] that decides where each cached bitmap lives. Producers
// such as the glyph and image caches add bitmaps with [TextureAtlas.AddItem]
// and receive an [Item] holding the pixel rectangle and normalized UV
// ranges used to build texture coordinates for quads.
//
// # Quick Start
//
//	a, err := atlas.New(atlas.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	item, err := a.AddItem(mask)
//	if err != nil {
//	    // ErrAtlasFull or ErrItemTooLarge: draw uncached
//	}
//
//	// Once per frame, before drawing:
//	if item, ok := a.GetItem(item.ID); ok {
//	    drawQuad(item.U, item.V)
//	}
//	_ = a.Flush(uploader)
//
// # Eviction
//
// When a bitmap does not fit, the atlas evicts the least recently used
// entries, oldest first, retrying after each eviction until the bitmap fits
// or the eviction budget ([Config.MaxEvictions]) is spent. Lookups with
// [TextureAtlas.GetItem] refresh an entry. There is no eviction callback: a
// caller holding an ID across frames must check GetItem before every use.
//
// # Architecture
//
// The module is organized into:
//   - boxpack: binary-tree rectangle packer
//   - atlas: texture atlas, eviction, pixel formats, logging
//   - glyph: glyph cache rasterizing fonts with golang.org/x/image
//   - imagecache: image cache keyed by content hash
//
// # Thread Safety
//
// TextureAtlas is designed for use on a single rendering goroutine.
// Use [Locked] when several goroutines must share one atlas.
package atlas
