package glyph

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/atlas"
)

// Sentinel errors for glyph package.
var (
	// ErrUnknownFont is returned when a glyph is requested for a family
	// that has not been added.
	ErrUnknownFont = errors.New("glyph: unknown font family")

	// ErrDuplicateFont is returned when a family is added twice.
	ErrDuplicateFont = errors.New("glyph: font family already added")

	// ErrInvalidSize is returned for non-positive font sizes.
	ErrInvalidSize = errors.New("glyph: font size must be positive")

	// ErrNoGlyph is returned when the font cannot produce a glyph.
	ErrNoGlyph = errors.New("glyph: glyph not available")
)

// FontInfo identifies a font face.
type FontInfo struct {
	// Family is the name the font was added under.
	Family string

	// Size is the font size in pixels.
	Size int
}

// Info uniquely identifies a glyph.
type Info struct {
	// Code is the Unicode code point.
	Code rune

	// Font is the face the glyph is rendered with.
	Font FontInfo
}

// String returns a string representation of the glyph info.
func (i Info) String() string {
	return fmt.Sprintf("%q %s/%d", i.Code, i.Font.Family, i.Font.Size)
}

// Metrics holds the layout metrics of a glyph.
type Metrics struct {
	// Bounds is the ink bounding box relative to the dot on the baseline.
	Bounds fixed.Rectangle26_6

	// Advance is how far the dot moves after the glyph.
	Advance fixed.Int26_6
}

// Glyph is a rasterized glyph.
type Glyph struct {
	Info Info

	// Placement is the mask rectangle relative to the dot on the baseline.
	// It is empty for blank glyphs such as spaces.
	Placement image.Rectangle

	// Advance is how far the dot moves after the glyph.
	Advance fixed.Int26_6

	// Item is the atlas location of the mask. It is the zero Item for
	// blank glyphs and for glyphs that could not be packed.
	Item atlas.Item
}

// placement is the per-glyph data stored next to its packing ID.
type placement struct {
	rect    image.Rectangle
	advance fixed.Int26_6
}
