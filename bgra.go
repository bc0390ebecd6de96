package atlas

import (
	"image"
	"image/color"
)

// BGRA is an in-memory image of non-premultiplied colors stored in B, G, R,
// A byte order. It backs FormatBGRA8 atlases so that Flush hands the
// backend bytes in texture order.
type BGRA struct {
	// Pix holds the pixels in B, G, R, A order. The pixel at (x, y) starts
	// at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewBGRA returns a new BGRA image with the given bounds.
func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{
		Pix:    make([]uint8, 4*r.Dx()*r.Dy()),
		Stride: 4 * r.Dx(),
		Rect:   r,
	}
}

func (p *BGRA) ColorModel() color.Model { return color.NRGBAModel }

func (p *BGRA) Bounds() image.Rectangle { return p.Rect }

func (p *BGRA) At(x, y int) color.Color {
	return p.NRGBAAt(x, y)
}

// NRGBAAt returns the color of the pixel at (x, y).
func (p *BGRA) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.NRGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[2], G: s[1], B: s[0], A: s[3]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (p *BGRA) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *BGRA) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	c1 := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c1.B, c1.G, c1.R, c1.A
}
