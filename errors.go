package atlas

import "errors"

// Sentinel errors for atlas package.
var (
	// ErrAtlasFull is returned when an item cannot be packed even after
	// evicting entries.
	ErrAtlasFull = errors.New("atlas: texture atlas is full")

	// ErrItemTooLarge is returned when an item would not fit in an empty
	// atlas. No eviction is attempted for such items.
	ErrItemTooLarge = errors.New("atlas: item larger than atlas")

	// ErrEmptyItem is returned when an item has no pixels.
	ErrEmptyItem = errors.New("atlas: item has no pixels")
)

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
