package glyph

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/gogpu/atlas"
)

func newTestCache(t *testing.T, config Config) *Cache {
	t.Helper()
	c, err := NewCache(config)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func goFont(size int) FontInfo {
	return FontInfo{Family: DefaultFamily, Size: size}
}

func TestGlyph_RasterizesAndPacks(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	g, err := c.Glyph(Info{Code: 'A', Font: goFont(14)})
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	if !g.Item.IsValid() {
		t.Fatal("glyph A not packed")
	}
	if g.Placement.Empty() || g.Advance <= 0 {
		t.Errorf("Placement = %v, Advance = %v", g.Placement, g.Advance)
	}
	if g.Item.Size != g.Placement.Size() {
		t.Errorf("item size %v != placement size %v", g.Item.Size, g.Placement.Size())
	}

	gray := c.Atlases()[0].Image().(*image.Gray)
	inked := false
	for y := g.Item.Box.Min.Y; y < g.Item.Box.Max.Y; y++ {
		for x := g.Item.Box.Min.X; x < g.Item.Box.Max.X; x++ {
			if gray.GrayAt(x, y).Y > 0 {
				inked = true
			}
		}
	}
	if !inked {
		t.Error("atlas holds no coverage for glyph A")
	}
}

func TestGlyph_Hit(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	info := Info{Code: 'g', Font: goFont(14)}

	first, err := c.Glyph(info)
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	second, err := c.Glyph(info)
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	if first.Item.ID != second.Item.ID || first.Placement != second.Placement {
		t.Errorf("second lookup returned %+v, want %+v", second, first)
	}
	if s := c.Stats(); s.Hits != 1 || s.Misses != 1 || s.Glyphs != 1 {
		t.Errorf("Stats = %+v, want 1 hit, 1 miss, 1 glyph", s)
	}
}

func TestGlyph_Blank(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	g, err := c.Glyph(Info{Code: ' ', Font: goFont(14)})
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	if g.Item.IsValid() {
		t.Error("space was packed into the atlas")
	}
	if g.Advance <= 0 {
		t.Errorf("space advance = %v", g.Advance)
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d, want 0", c.Size())
	}
}

func TestGlyph_Errors(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	if _, err := c.Glyph(Info{Code: 'A', Font: FontInfo{Family: "nope", Size: 12}}); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("unknown family error = %v", err)
	}
	if _, err := c.Glyph(Info{Code: 'A', Font: goFont(0)}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero size error = %v", err)
	}
	if err := c.AddFont(DefaultFamily, gomono.TTF); !errors.Is(err, ErrDuplicateFont) {
		t.Errorf("duplicate font error = %v", err)
	}
	if err := c.AddFont("broken", []byte("not a font")); err == nil {
		t.Error("AddFont accepted garbage")
	}
}

func TestAddFont(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	if err := c.AddFont("mono", gomono.TTF); err != nil {
		t.Fatalf("AddFont: %v", err)
	}

	g, err := c.Glyph(Info{Code: 'i', Font: FontInfo{Family: "mono", Size: 14}})
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	w, err := c.Glyph(Info{Code: 'W', Font: FontInfo{Family: "mono", Size: 14}})
	if err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	if g.Advance != w.Advance {
		t.Errorf("monospace advances differ: %v vs %v", g.Advance, w.Advance)
	}
}

func TestTiers(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	for _, size := range []int{10, 12, 16} {
		if _, err := c.Glyph(Info{Code: 'x', Font: goFont(size)}); err != nil {
			t.Fatalf("Glyph size %d: %v", size, err)
		}
	}
	if n := len(c.Atlases()); n != 1 {
		t.Errorf("sizes up to 16 used %d atlases, want 1", n)
	}

	if _, err := c.Glyph(Info{Code: 'x', Font: goFont(40)}); err != nil {
		t.Fatalf("Glyph size 40: %v", err)
	}
	if _, err := c.Glyph(Info{Code: 'x', Font: goFont(500)}); err != nil {
		t.Fatalf("Glyph size 500: %v", err)
	}
	if n := len(c.Atlases()); n != 3 {
		t.Errorf("got %d atlases, want 3", n)
	}
}

func TestNewCache_InvalidTiers(t *testing.T) {
	config := DefaultConfig()
	config.Tiers = []int{32, 16}
	if _, err := NewCache(config); err == nil {
		t.Error("NewCache accepted decreasing tiers")
	}

	config = DefaultConfig()
	config.Atlas.Size = 10
	var cfgErr *atlas.ConfigError
	if _, err := NewCache(config); !errors.As(err, &cfgErr) {
		t.Errorf("NewCache error = %v, want *atlas.ConfigError", err)
	}
}

func TestEviction_Prune(t *testing.T) {
	config := DefaultConfig()
	config.Atlas.Size = 64
	config.Tiers = []int{64}
	c := newTestCache(t, config)

	fi := goFont(20)
	for r := 'A'; r <= 'Z'; r++ {
		if _, err := c.Glyph(Info{Code: r, Font: fi}); err != nil {
			t.Fatalf("Glyph %q: %v", r, err)
		}
	}

	s := c.Stats()
	if s.Evictions == 0 {
		t.Fatal("expected a 64x64 atlas to evict")
	}
	if removed := c.Prune(); uint64(removed) != s.Evictions {
		t.Errorf("Prune removed %d, want %d", removed, s.Evictions)
	}

	// 'A' was the least recently used glyph and has been evicted.
	before := c.Stats().Misses
	g, err := c.Glyph(Info{Code: 'A', Font: fi})
	if err != nil {
		t.Fatalf("Glyph A: %v", err)
	}
	if !g.Item.IsValid() {
		t.Error("re-rasterized glyph not packed")
	}
	if c.Stats().Misses != before+1 {
		t.Error("evicted glyph lookup was not a miss")
	}
}

func TestGlyphs_Normalizes(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	glyphs, err := c.Glyphs("e\u0301!", goFont(14))
	if err != nil {
		t.Fatalf("Glyphs: %v", err)
	}
	if len(glyphs) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(glyphs))
	}
	if glyphs[0].Info.Code != 'é' {
		t.Errorf("first glyph = %q, want é", glyphs[0].Info.Code)
	}
}

func TestMetricsAndAdvance(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	fi := goFont(16)

	m, err := c.Metrics(Info{Code: 'M', Font: fi})
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.Advance <= 0 || m.Bounds.Empty() {
		t.Errorf("Metrics = %+v", m)
	}
	again, _ := c.Metrics(Info{Code: 'M', Font: fi})
	if again != m {
		t.Error("memoized metrics differ")
	}

	single, err := c.Advance("M", fi)
	if err != nil || single != m.Advance {
		t.Errorf("Advance(M) = %v, %v; want %v", single, err, m.Advance)
	}
	if empty, _ := c.Advance("", fi); empty != 0 {
		t.Errorf("Advance(\"\") = %v", empty)
	}
	if c.Size() != 0 {
		t.Error("Metrics rasterized into the atlas")
	}
}

func TestPercentage(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	if c.Percentage() != 0 {
		t.Errorf("empty cache Percentage = %f", c.Percentage())
	}
	if _, err := c.Glyphs("atlas", goFont(14)); err != nil {
		t.Fatalf("Glyphs: %v", err)
	}
	if p := c.Percentage(); p <= 0 || p >= 100 {
		t.Errorf("Percentage = %f", p)
	}
}

// closeFailFace is a face whose Close fails.
type closeFailFace struct {
	font.Face
}

var errFaceClose = errors.New("face close failed")

func (f closeFailFace) Close() error {
	_ = f.Face.Close()
	return errFaceClose
}

func TestClose_ReturnsFaceErrors(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	if _, err := c.Glyph(Info{Code: 'a', Font: goFont(12)}); err != nil {
		t.Fatalf("Glyph: %v", err)
	}
	fi := goFont(14)
	face, err := c.face(fi)
	if err != nil {
		t.Fatalf("face: %v", err)
	}
	c.faces[fi] = closeFailFace{Face: face}

	if err := c.Close(); !errors.Is(err, errFaceClose) {
		t.Errorf("Close error = %v, want %v", err, errFaceClose)
	}
	if len(c.faces) != 0 {
		t.Errorf("%d faces left after Close", len(c.faces))
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
