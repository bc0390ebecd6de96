package atlas

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/atlas/boxpack"
)

// TextureAtlas packs bitmaps into a square texture and hands out their
// texture coordinates.
//
// Pixels are staged in CPU memory; the rendering backend receives the
// modified region through Flush.
//
// TextureAtlas is not safe for concurrent use.
type TextureAtlas struct {
	config Config
	packer *boxpack.Packer

	// img is the staging texture; pix and stride alias its pixel buffer.
	img    draw.Image
	pix    []byte
	stride int

	// dirty is the region modified since the last upload.
	dirty image.Rectangle

	stats Stats
}

// Stats contains atlas statistics.
type Stats struct {
	// Items is the number of entries currently packed.
	Items int
	// Hits is the number of GetItem calls that found their entry.
	Hits uint64
	// Misses is the number of GetItem calls for unknown or evicted IDs.
	Misses uint64
	// Evictions is the number of entries evicted to make room.
	Evictions uint64
	// Failures is the number of AddItem calls that could not be packed.
	Failures uint64
}

// New creates a texture atlas.
func New(config Config) (*TextureAtlas, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	img := config.Format.newImage(config.Size)
	a := &TextureAtlas{
		config: config,
		packer: boxpack.New(image.Pt(config.Size, config.Size), config.Border),
		img:    img,
	}
	switch m := img.(type) {
	case *image.Gray:
		a.pix, a.stride = m.Pix, m.Stride
	case *image.NRGBA:
		a.pix, a.stride = m.Pix, m.Stride
	case *BGRA:
		a.pix, a.stride = m.Pix, m.Stride
	}

	Logger().Debug("atlas: created",
		"size", config.Size,
		"format", config.Format,
		"border", config.Border)

	return a, nil
}

// Config returns the atlas configuration.
func (a *TextureAtlas) Config() Config {
	return a.config
}

// Size returns the atlas dimension (width = height).
func (a *TextureAtlas) Size() int {
	return a.config.Size
}

// Format returns the atlas pixel format.
func (a *TextureAtlas) Format() PixelFormat {
	return a.config.Format
}

// AddItem packs img into the atlas and copies its pixels.
//
// When there is no room the least recently used entries are evicted until
// img fits. AddItem returns ErrItemTooLarge if img can never fit and
// ErrAtlasFull if it still does not fit after eviction; the caller should
// then draw uncached or use another atlas.
func (a *TextureAtlas) AddItem(img image.Image) (Item, error) {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return Item{}, ErrEmptyItem
	}
	if !a.packer.Fits(size) {
		a.stats.Failures++
		return Item{}, fmt.Errorf("%w: %dx%d in %dx%d with border %d",
			ErrItemTooLarge, size.X, size.Y, a.config.Size, a.config.Size, a.config.Border)
	}

	n, ok := a.packer.Insert(size)
	if !ok {
		n, ok = a.evictFor(size)
	}
	if !ok {
		a.stats.Failures++
		Logger().Warn("atlas: no room after eviction",
			"width", size.X,
			"height", size.Y,
			"items", a.packer.Len(),
			"used", a.PercentageUsed())
		return Item{}, ErrAtlasFull
	}

	a.blit(n, img)
	return toItem(a.packer, n, a.config.Size), nil
}

// blit clears the node's cell, border included, and copies img into its
// content rectangle.
func (a *TextureAtlas) blit(n boxpack.Node, img image.Image) {
	draw.Draw(a.img, n.Box, image.Transparent, image.Point{}, draw.Src)
	draw.Draw(a.img, a.packer.Content(n), img, img.Bounds().Min, draw.Src)
	a.dirty = a.dirty.Union(n.Box)
}

// GetItem returns the item with the given ID and marks it as recently
// used. It returns false if the ID is unknown or the entry was evicted.
func (a *TextureAtlas) GetItem(id boxpack.ID) (Item, bool) {
	n, ok := a.packer.Node(id)
	if !ok {
		a.stats.Misses++
		return Item{}, false
	}
	a.stats.Hits++
	return toItem(a.packer, n, a.config.Size), true
}

// PeekItem returns the item with the given ID without marking it as used.
func (a *TextureAtlas) PeekItem(id boxpack.ID) (Item, bool) {
	n, ok := a.packer.Peek(id)
	if !ok {
		return Item{}, false
	}
	return toItem(a.packer, n, a.config.Size), true
}

// RemoveItem frees the entry with the given ID.
// The pixels are left in place until the space is reused.
func (a *TextureAtlas) RemoveItem(id boxpack.ID) bool {
	return a.packer.Remove(id)
}

// Len returns the number of packed entries.
func (a *TextureAtlas) Len() int {
	return a.packer.Len()
}

// Utilization returns the fraction of the atlas in use (0.0 to 1.0),
// borders included.
func (a *TextureAtlas) Utilization() float64 {
	return a.packer.Utilization()
}

// PercentageUsed returns the percentage of the atlas in use (0 to 100).
func (a *TextureAtlas) PercentageUsed() float32 {
	return float32(a.packer.Utilization() * 100)
}

// Stats returns atlas statistics.
func (a *TextureAtlas) Stats() Stats {
	s := a.stats
	s.Items = a.packer.Len()
	return s
}

// Image returns the staging texture. It must be treated as read-only.
func (a *TextureAtlas) Image() image.Image {
	return a.img
}

// Reset removes every entry and clears the staging texture.
// IDs handed out before Reset never resolve again.
func (a *TextureAtlas) Reset() {
	a.packer.Reset()
	clear(a.pix)
	a.dirty = a.img.Bounds()
}
