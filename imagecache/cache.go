// Package imagecache caches images in an RGBA texture atlas, keyed by a
// hash of their content.
//
// Identical pixels share one atlas entry no matter which image.Image value
// carries them. Entries are evicted by the atlas when it runs out of room;
// Get reports an evicted entry as a miss.
//
// Cache is not safe for concurrent use.
package imagecache

import (
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/color"

	"golang.org/x/crypto/blake2b"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/internal/keyindex"
)

// Key is the BLAKE2b-256 digest of an image's size and NRGBA pixels.
// Images that look the same share a key.
type Key [blake2b.Size256]byte

// String returns the hex digest.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// KeyOf returns the content key of img.
func KeyOf(img image.Image) Key {
	b := img.Bounds()
	buf := make([]byte, 0, 8+4*b.Dx())
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.Dx())) //nolint:gosec // image sizes are non-negative
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.Dy())) //nolint:gosec // image sizes are non-negative

	h, _ := blake2b.New256(nil) // only fails for oversized keys
	_, _ = h.Write(buf)

	// Fully transparent pixels hash as zero whatever their color channels,
	// matching color.NRGBAModel.
	if m, ok := img.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			row := append(buf[:0], m.Pix[i:i+4*b.Dx()]...)
			for j := 0; j < len(row); j += 4 {
				if row[j+3] == 0 {
					row[j], row[j+1], row[j+2] = 0, 0, 0
				}
			}
			_, _ = h.Write(row)
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := buf[:0]
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				row = append(row, c.R, c.G, c.B, c.A)
			}
			_, _ = h.Write(row)
		}
	}

	var k Key
	h.Sum(k[:0])
	return k
}

// Cache packs images into one RGBA atlas.
type Cache struct {
	atlas *atlas.TextureAtlas
	index *keyindex.Index[Key, struct{}]
}

// New creates an image cache. The atlas format is forced to FormatRGBA8.
func New(config atlas.Config) (*Cache, error) {
	config.Format = atlas.FormatRGBA8
	a, err := atlas.New(config)
	if err != nil {
		return nil, err
	}
	return &Cache{
		atlas: a,
		index: keyindex.New[Key, struct{}](),
	}, nil
}

// Add returns the atlas item holding img, packing it on first use.
func (c *Cache) Add(img image.Image) (Key, atlas.Item, error) {
	key := KeyOf(img)
	if item, ok := c.Get(key); ok {
		return key, item, nil
	}

	item, err := c.atlas.AddItem(img)
	if err != nil {
		return key, atlas.Item{}, err
	}
	c.index.Set(key, item.ID, struct{}{})

	atlas.Logger().Debug("imagecache: packed",
		"key", key.String()[:16],
		"size", item.Size,
		"id", item.ID)

	return key, item, nil
}

// Get returns the item for key and marks it as recently used.
// It returns false if the image was never added or has been evicted.
func (c *Cache) Get(key Key) (atlas.Item, bool) {
	id, _, ok := c.index.Get(key)
	if !ok {
		return atlas.Item{}, false
	}
	item, ok := c.atlas.GetItem(id)
	if !ok {
		c.index.Delete(key)
		return atlas.Item{}, false
	}
	return item, true
}

// Invalidate removes the image with the given key from the cache.
func (c *Cache) Invalidate(key Key) bool {
	id, _, ok := c.index.Get(key)
	if !ok {
		return false
	}
	c.index.Delete(key)
	return c.atlas.RemoveItem(id)
}

// Len returns the number of images currently packed.
func (c *Cache) Len() int {
	return c.atlas.Len()
}

// Atlas returns the underlying atlas, for uploads and diagnostics.
func (c *Cache) Atlas() *atlas.TextureAtlas {
	return c.atlas
}
