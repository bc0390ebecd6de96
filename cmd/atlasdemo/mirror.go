package main

import (
	"fmt"
	"image"

	"github.com/gogpu/atlas"
)

// mirror stands in for a GPU texture: uploads are copied into an image of
// the atlas size.
type mirror struct {
	img    image.Image
	pix    []byte
	stride int
}

func newMirror(a *atlas.TextureAtlas) *mirror {
	r := image.Rect(0, 0, a.Size(), a.Size())
	switch a.Format() {
	case atlas.FormatRGBA8:
		m := image.NewNRGBA(r)
		return &mirror{img: m, pix: m.Pix, stride: m.Stride}
	case atlas.FormatBGRA8:
		m := atlas.NewBGRA(r)
		return &mirror{img: m, pix: m.Pix, stride: m.Stride}
	default:
		m := image.NewGray(r)
		return &mirror{img: m, pix: m.Pix, stride: m.Stride}
	}
}

// Upload implements atlas.Uploader.
func (m *mirror) Upload(region image.Rectangle, format atlas.PixelFormat, pix []byte, stride int) error {
	if !region.In(m.img.Bounds()) {
		return fmt.Errorf("region %v outside texture %v", region, m.img.Bounds())
	}
	bpp := format.BytesPerPixel()
	rowBytes := region.Dx() * bpp
	for y := 0; y < region.Dy(); y++ {
		dst := (region.Min.Y+y)*m.stride + region.Min.X*bpp
		copy(m.pix[dst:dst+rowBytes], pix[y*stride:y*stride+rowBytes])
	}
	return nil
}
