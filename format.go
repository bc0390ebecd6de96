package atlas

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// PixelFormat is the pixel layout of an atlas texture.
type PixelFormat uint8

const (
	// FormatL8 stores one 8-bit coverage or luminance channel.
	// Used for glyph masks.
	FormatL8 PixelFormat = iota

	// FormatRGBA8 stores 8-bit non-premultiplied RGBA.
	// Used for images and color glyphs.
	FormatRGBA8

	// FormatBGRA8 stores 8-bit non-premultiplied RGBA in BGRA byte order,
	// the preferred swapchain layout on most desktop backends.
	FormatBGRA8
)

func (f PixelFormat) valid() bool {
	return f <= FormatBGRA8
}

// BytesPerPixel returns the size of one pixel in bytes.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA8, FormatBGRA8:
		return 4
	default:
		return 1
	}
}

// TextureFormat returns the matching WebGPU texture format.
func (f PixelFormat) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatL8:
		return gputypes.TextureFormatR8Unorm
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// String returns the name used in configuration files.
func (f PixelFormat) String() string {
	switch f {
	case FormatL8:
		return "l8"
	case FormatRGBA8:
		return "rgba8"
	case FormatBGRA8:
		return "bgra8"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f PixelFormat) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("atlas: unknown pixel format %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *PixelFormat) UnmarshalText(text []byte) error {
	switch string(text) {
	case "l8":
		*f = FormatL8
	case "rgba8":
		*f = FormatRGBA8
	case "bgra8":
		*f = FormatBGRA8
	default:
		return fmt.Errorf("atlas: unknown pixel format %q", text)
	}
	return nil
}

// newImage allocates a size x size staging image sharing the format's layout.
// L8 is backed by image.Gray so that alpha masks and gray images both
// store their coverage in the single channel.
func (f PixelFormat) newImage(size int) draw.Image {
	r := image.Rect(0, 0, size, size)
	switch f {
	case FormatRGBA8:
		return image.NewNRGBA(r)
	case FormatBGRA8:
		return NewBGRA(r)
	default:
		return image.NewGray(r)
	}
}

// Filter is the texture sampling filter requested from the backend.
type Filter uint8

const (
	// FilterLinear samples with bilinear filtering.
	FilterLinear Filter = iota

	// FilterNearest samples the nearest texel.
	FilterNearest
)

func (f Filter) valid() bool {
	return f <= FilterNearest
}

// String returns the name used in configuration files.
func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "linear"
	case FilterNearest:
		return "nearest"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Filter) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("atlas: unknown filter %d", uint8(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Filter) UnmarshalText(text []byte) error {
	switch string(text) {
	case "linear":
		*f = FilterLinear
	case "nearest":
		*f = FilterNearest
	default:
		return fmt.Errorf("atlas: unknown filter %q", text)
	}
	return nil
}
