package atlas

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDefaultConfig_Valid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"too small", func(c *Config) { c.Size = 8 }, "Size"},
		{"too large", func(c *Config) { c.Size = 32768 }, "Size"},
		{"not power of 2", func(c *Config) { c.Size = 1000 }, "Size"},
		{"bad format", func(c *Config) { c.Format = PixelFormat(9) }, "Format"},
		{"bad filter", func(c *Config) { c.Filter = Filter(9) }, "Filter"},
		{"negative border", func(c *Config) { c.Border = -1 }, "Border"},
		{"huge border", func(c *Config) { c.Size = 16; c.Border = 8 }, "Border"},
		{"negative evictions", func(c *Config) { c.MaxEvictions = -1 }, "MaxEvictions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)

			var cfgErr *ConfigError
			if err := c.Validate(); !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestPixelFormat(t *testing.T) {
	if FormatL8.BytesPerPixel() != 1 || FormatRGBA8.BytesPerPixel() != 4 || FormatBGRA8.BytesPerPixel() != 4 {
		t.Error("unexpected bytes per pixel")
	}
	if FormatL8.TextureFormat() != gputypes.TextureFormatR8Unorm {
		t.Errorf("L8 texture format = %v", FormatL8.TextureFormat())
	}
	if FormatRGBA8.TextureFormat() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("RGBA8 texture format = %v", FormatRGBA8.TextureFormat())
	}
	if FormatBGRA8.TextureFormat() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("BGRA8 texture format = %v", FormatBGRA8.TextureFormat())
	}
	if PixelFormat(7).TextureFormat() != gputypes.TextureFormatUndefined {
		t.Error("unknown format should map to undefined")
	}
}

func TestPixelFormat_Text(t *testing.T) {
	var f PixelFormat
	if err := f.UnmarshalText([]byte("rgba8")); err != nil || f != FormatRGBA8 {
		t.Errorf("UnmarshalText(rgba8) = %v, %v", f, err)
	}
	if err := f.UnmarshalText([]byte("bgra8")); err != nil || f != FormatBGRA8 {
		t.Errorf("UnmarshalText(bgra8) = %v, %v", f, err)
	}
	if b, _ := FormatBGRA8.MarshalText(); string(b) != "bgra8" {
		t.Errorf("FormatBGRA8.MarshalText() = %q", b)
	}
	if err := f.UnmarshalText([]byte("bgr")); err == nil {
		t.Error("UnmarshalText(bgr) succeeded")
	}
	if _, err := PixelFormat(9).MarshalText(); err == nil {
		t.Error("MarshalText of unknown format succeeded")
	}

	var fl Filter
	if err := fl.UnmarshalText([]byte("nearest")); err != nil || fl != FilterNearest {
		t.Errorf("UnmarshalText(nearest) = %v, %v", fl, err)
	}
	if b, _ := FilterLinear.MarshalText(); string(b) != "linear" {
		t.Errorf("FilterLinear.MarshalText() = %q", b)
	}
}
