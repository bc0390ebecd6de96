// Package glyph caches rasterized glyphs in texture atlases.
//
// A [Cache] rasterizes glyphs with golang.org/x/image/font/opentype on
// first use and packs their coverage masks into an L8 [atlas.TextureAtlas].
// Sizes are grouped into tiers, each tier with its own atlas, so that small
// UI text is not evicted by the occasional large heading.
//
// # Usage
//
//	c, err := glyph.NewCache(glyph.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	glyphs, err := c.Glyphs("Hello", glyph.FontInfo{Family: glyph.DefaultFamily, Size: 14})
//	for _, g := range glyphs {
//	    if g.Item.IsValid() {
//	        drawQuad(g.Placement, g.Item.U, g.Item.V)
//	    }
//	}
//
// Glyph entries may be evicted from their atlas at any time; a cached
// lookup confirms the entry with the atlas and re-rasterizes it when it is
// gone. Call Prune occasionally to drop index entries of evicted glyphs.
//
// # Thread Safety
//
// Cache is not safe for concurrent use. It is meant to be driven from the
// rendering goroutine.
package glyph
