package glyph

import (
	"errors"
	"fmt"
	"image"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/boxpack"
	"github.com/gogpu/atlas/internal/keyindex"
)

// DefaultFamily is the family name of the built-in Go Regular font.
const DefaultFamily = "Go"

// Config holds glyph cache configuration.
type Config struct {
	// Atlas configures every tier's atlas. Format is forced to FormatL8.
	Atlas atlas.Config `toml:"atlas"`

	// Tiers are the inclusive upper font sizes of each atlas tier, in
	// strictly increasing order. Larger sizes use the last tier.
	// Default: 16, 32, 64, 128
	Tiers []int `toml:"tiers"`

	// MetricsCacheSize is the number of glyph metrics memoized.
	// Default: 4096
	MetricsCacheSize int `toml:"metrics_cache_size"`

	// Hinting is the outline hinting used when rasterizing.
	// Default: font.HintingFull
	Hinting font.Hinting `toml:"-"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Atlas:            atlas.DefaultConfig(),
		Tiers:            []int{16, 32, 64, 128},
		MetricsCacheSize: 4096,
		Hinting:          font.HintingFull,
	}
}

// tier is the atlas shared by a range of font sizes, created on first use.
type tier struct {
	maxSize int
	atlas   *atlas.TextureAtlas
	index   *keyindex.Index[Info, placement]
}

// Cache rasterizes glyphs and packs them into tiered texture atlases.
type Cache struct {
	config  Config
	fonts   map[string]*opentype.Font
	faces   map[FontInfo]font.Face
	tiers   []*tier
	metrics *lru.Cache

	hits   uint64
	misses uint64
}

// Stats contains glyph cache statistics.
type Stats struct {
	Glyphs    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Atlases   int
}

// NewCache creates a glyph cache with the Go Regular font registered as
// DefaultFamily.
func NewCache(config Config) (*Cache, error) {
	config.Atlas.Format = atlas.FormatL8
	if err := config.Atlas.Validate(); err != nil {
		return nil, err
	}
	if len(config.Tiers) == 0 {
		config.Tiers = DefaultConfig().Tiers
	}
	for i, s := range config.Tiers {
		if s <= 0 || (i > 0 && s <= config.Tiers[i-1]) {
			return nil, fmt.Errorf("glyph: tiers must be positive and increasing, got %v", config.Tiers)
		}
	}
	if config.MetricsCacheSize <= 0 {
		config.MetricsCacheSize = 4096
	}

	metrics, err := lru.New(config.MetricsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("glyph: metrics cache: %w", err)
	}

	c := &Cache{
		config:  config,
		fonts:   make(map[string]*opentype.Font),
		faces:   make(map[FontInfo]font.Face),
		tiers:   make([]*tier, len(config.Tiers)),
		metrics: metrics,
	}
	for i, s := range config.Tiers {
		c.tiers[i] = &tier{maxSize: s}
	}

	if err := c.AddFont(DefaultFamily, goregular.TTF); err != nil {
		return nil, err
	}
	return c, nil
}

// AddFont parses TrueType or OpenType data and registers it under family.
func (c *Cache) AddFont(family string, data []byte) error {
	if _, ok := c.fonts[family]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFont, family)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("glyph: parse font %q: %w", family, err)
	}
	c.fonts[family] = f
	return nil
}

// face returns the face for fi, creating it on first use.
func (c *Cache) face(fi FontInfo) (font.Face, error) {
	if fi.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, fi.Size)
	}
	if face, ok := c.faces[fi]; ok {
		return face, nil
	}
	f, ok := c.fonts[fi.Family]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, fi.Family)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(fi.Size),
		DPI:     72,
		Hinting: c.config.Hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: face %s/%d: %w", fi.Family, fi.Size, err)
	}
	c.faces[fi] = face
	return face, nil
}

// tierFor returns the tier holding glyphs of the given size, creating its
// atlas on first use.
func (c *Cache) tierFor(size int) (*tier, error) {
	t := c.tiers[len(c.tiers)-1]
	for _, candidate := range c.tiers {
		if size <= candidate.maxSize {
			t = candidate
			break
		}
	}
	if t.atlas == nil {
		a, err := atlas.New(c.config.Atlas)
		if err != nil {
			return nil, err
		}
		t.atlas = a
		t.index = keyindex.New[Info, placement]()
		atlas.Logger().Debug("glyph: tier atlas created", "max_size", t.maxSize)
	}
	return t, nil
}

// Glyph returns the glyph for info, rasterizing and packing it on a miss.
//
// If the mask cannot be packed the returned Glyph still carries its
// placement and advance, with a zero Item, together with the atlas error;
// callers may then draw the glyph uncached.
func (c *Cache) Glyph(info Info) (Glyph, error) {
	face, err := c.face(info.Font)
	if err != nil {
		return Glyph{}, err
	}
	t, err := c.tierFor(info.Font.Size)
	if err != nil {
		return Glyph{}, err
	}

	if id, p, ok := t.index.Get(info); ok {
		if item, ok := t.atlas.GetItem(id); ok {
			c.hits++
			return Glyph{Info: info, Placement: p.rect, Advance: p.advance, Item: item}, nil
		}
		t.index.Delete(info)
	}
	c.misses++

	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, info.Code)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %s", ErrNoGlyph, info)
	}
	g := Glyph{Info: info, Placement: dr, Advance: advance}
	if dr.Empty() {
		return g, nil
	}

	// The face reuses its mask buffer between calls.
	bitmap := image.NewAlpha(image.Rectangle{Max: dr.Size()})
	draw.Draw(bitmap, bitmap.Bounds(), mask, maskp, draw.Src)

	item, err := t.atlas.AddItem(bitmap)
	if err != nil {
		return g, fmt.Errorf("glyph: pack %s: %w", info, err)
	}
	t.index.Set(info, item.ID, placement{rect: dr, advance: advance})
	g.Item = item

	atlas.Logger().Debug("glyph: rasterized",
		"code", info.Code,
		"family", info.Font.Family,
		"size", info.Font.Size,
		"id", item.ID)

	return g, nil
}

// Glyphs returns one glyph per rune of s after NFC normalization, so that
// composed and decomposed spellings share cache entries.
func (c *Cache) Glyphs(s string, fi FontInfo) ([]Glyph, error) {
	s = norm.NFC.String(s)
	out := make([]Glyph, 0, len(s))
	for _, r := range s {
		g, err := c.Glyph(Info{Code: r, Font: fi})
		if err != nil {
			return out, err
		}
		out = append(out, g)
	}
	return out, nil
}

// Metrics returns the layout metrics of a glyph without rasterizing it.
func (c *Cache) Metrics(info Info) (Metrics, error) {
	if v, ok := c.metrics.Get(info); ok {
		return v.(Metrics), nil
	}
	face, err := c.face(info.Font)
	if err != nil {
		return Metrics{}, err
	}
	bounds, advance, ok := face.GlyphBounds(info.Code)
	if !ok {
		return Metrics{}, fmt.Errorf("%w: %s", ErrNoGlyph, info)
	}
	m := Metrics{Bounds: bounds, Advance: advance}
	c.metrics.Add(info, m)
	return m, nil
}

// Advance returns the advance of s laid out on one line, kerning included.
func (c *Cache) Advance(s string, fi FontInfo) (fixed.Int26_6, error) {
	face, err := c.face(fi)
	if err != nil {
		return 0, err
	}
	var total fixed.Int26_6
	prev := rune(-1)
	for _, r := range norm.NFC.String(s) {
		m, err := c.Metrics(Info{Code: r, Font: fi})
		if err != nil {
			return 0, err
		}
		if prev >= 0 {
			total += face.Kern(prev, r)
		}
		total += m.Advance
		prev = r
	}
	return total, nil
}

// Prune drops index entries whose atlas entries were evicted and returns
// the number dropped.
func (c *Cache) Prune() int {
	removed := 0
	for _, t := range c.tiers {
		if t.atlas == nil {
			continue
		}
		a := t.atlas
		removed += t.index.Prune(func(id boxpack.ID) bool {
			_, ok := a.PeekItem(id)
			return ok
		})
	}
	return removed
}

// Size returns the number of glyphs currently packed.
func (c *Cache) Size() int {
	n := 0
	for _, t := range c.tiers {
		if t.atlas != nil {
			n += t.atlas.Len()
		}
	}
	return n
}

// Percentage returns the percentage of allocated atlas space in use.
func (c *Cache) Percentage() float32 {
	var used float64
	count := 0
	for _, t := range c.tiers {
		if t.atlas != nil {
			used += t.atlas.Utilization()
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float32(used / float64(count) * 100)
}

// Atlases returns the atlases created so far, smallest tier first.
func (c *Cache) Atlases() []*atlas.TextureAtlas {
	var out []*atlas.TextureAtlas
	for _, t := range c.tiers {
		if t.atlas != nil {
			out = append(out, t.atlas)
		}
	}
	return out
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	s := Stats{Hits: c.hits, Misses: c.misses}
	for _, t := range c.tiers {
		if t.atlas == nil {
			continue
		}
		as := t.atlas.Stats()
		s.Glyphs += as.Items
		s.Evictions += as.Evictions
		s.Atlases++
	}
	return s
}

// Close releases the font faces and returns the errors of any that failed
// to close. The cache must not be used afterwards.
func (c *Cache) Close() error {
	var errs []error
	for fi, face := range c.faces {
		if err := face.Close(); err != nil {
			errs = append(errs, fmt.Errorf("glyph: close face %s/%d: %w", fi.Family, fi.Size, err))
		}
		delete(c.faces, fi)
	}
	c.metrics.Purge()
	return errors.Join(errs...)
}
