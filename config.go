package atlas

// Default atlas settings.
const (
	// DefaultSize is the default atlas dimension (1024x1024).
	DefaultSize = 1024

	// MinSize is the minimum atlas dimension.
	MinSize = 16

	// MaxSize is the maximum atlas dimension.
	MaxSize = 16384

	// DefaultBorder is the default padding on each side of a packed item.
	DefaultBorder = 1
)

// Config holds atlas configuration.
type Config struct {
	// Size is the atlas texture size (width = height).
	// Must be a power of 2. Default: 1024
	Size int `toml:"size"`

	// Format is the pixel format of the atlas texture.
	// Default: FormatL8
	Format PixelFormat `toml:"format"`

	// Filter is the sampling filter the rendering backend should use.
	// Default: FilterLinear
	Filter Filter `toml:"filter"`

	// Border is the padding in pixels on every side of a packed item,
	// preventing bilinear filtering from bleeding between neighbours.
	// Default: 1
	Border int `toml:"border"`

	// MaxEvictions caps the entries evicted to make room for one item.
	// Zero means every entry may be evicted.
	MaxEvictions int `toml:"max_evictions"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Size:   DefaultSize,
		Format: FormatL8,
		Filter: FilterLinear,
		Border: DefaultBorder,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Size < MinSize {
		return &ConfigError{Field: "Size", Reason: "must be at least 16"}
	}
	if c.Size > MaxSize {
		return &ConfigError{Field: "Size", Reason: "must be at most 16384"}
	}
	if c.Size&(c.Size-1) != 0 {
		return &ConfigError{Field: "Size", Reason: "must be power of 2"}
	}
	if !c.Format.valid() {
		return &ConfigError{Field: "Format", Reason: "unknown pixel format"}
	}
	if !c.Filter.valid() {
		return &ConfigError{Field: "Filter", Reason: "unknown filter"}
	}
	if c.Border < 0 {
		return &ConfigError{Field: "Border", Reason: "must be non-negative"}
	}
	if 2*c.Border >= c.Size {
		return &ConfigError{Field: "Border", Reason: "must be less than half Size"}
	}
	if c.MaxEvictions < 0 {
		return &ConfigError{Field: "MaxEvictions", Reason: "must be non-negative"}
	}
	return nil
}
