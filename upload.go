package atlas

import (
	"fmt"
	"image"
)

// Uploader receives modified atlas pixels, typically to write them into a
// GPU texture.
//
// pix starts at the first pixel of region; rows are stride bytes apart and
// each row holds region.Dx() pixels of format. pix aliases the staging
// buffer and must not be retained after Upload returns.
type Uploader interface {
	Upload(region image.Rectangle, format PixelFormat, pix []byte, stride int) error
}

// UploaderFunc adapts a function to the Uploader interface.
type UploaderFunc func(region image.Rectangle, format PixelFormat, pix []byte, stride int) error

// Upload calls f.
func (f UploaderFunc) Upload(region image.Rectangle, format PixelFormat, pix []byte, stride int) error {
	return f(region, format, pix, stride)
}

// Dirty returns true if the atlas has been modified since the last upload.
func (a *TextureAtlas) Dirty() bool {
	return !a.dirty.Empty()
}

// DirtyRegion returns the bounding box of pixels modified since the last
// upload.
func (a *TextureAtlas) DirtyRegion() image.Rectangle {
	return a.dirty
}

// MarkClean marks the atlas as uploaded.
func (a *TextureAtlas) MarkClean() {
	a.dirty = image.Rectangle{}
}

// Flush passes the dirty region to u and marks the atlas clean.
// Nothing is uploaded when the atlas is clean. On error the atlas stays
// dirty so that the next Flush retries.
func (a *TextureAtlas) Flush(u Uploader) error {
	if a.dirty.Empty() {
		return nil
	}

	r := a.dirty
	bpp := a.config.Format.BytesPerPixel()
	start := r.Min.Y*a.stride + r.Min.X*bpp
	end := (r.Max.Y-1)*a.stride + r.Max.X*bpp

	if err := u.Upload(r, a.config.Format, a.pix[start:end], a.stride); err != nil {
		return fmt.Errorf("atlas: upload %v: %w", r, err)
	}
	a.dirty = image.Rectangle{}
	return nil
}
