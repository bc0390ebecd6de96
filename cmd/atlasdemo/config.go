package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/glyph"
)

// demoConfig is the TOML configuration of the demo.
//
//	frames = 600
//	text = "The quick brown fox"
//	sizes = [12, 14, 18, 24, 36]
//
//	[glyph]
//	tiers = [16, 32, 64]
//
//	[glyph.atlas]
//	size = 256
//	border = 1
//	filter = "linear"
//
//	[images]
//	size = 512
//	max_evictions = 8
type demoConfig struct {
	Frames int          `toml:"frames"`
	Text   string       `toml:"text"`
	Sizes  []int        `toml:"sizes"`
	Glyph  glyph.Config `toml:"glyph"`
	Images atlas.Config `toml:"images"`
}

func defaultDemoConfig() demoConfig {
	images := atlas.DefaultConfig()
	images.Size = 512
	images.Format = atlas.FormatRGBA8

	return demoConfig{
		Frames: 300,
		Text:   "Sphinx of black quartz, judge my vow. Ça va? Größe: 42%",
		Sizes:  []int{11, 13, 16, 20, 28, 40},
		Glyph:  glyph.DefaultConfig(),
		Images: images,
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load %s: unknown keys %v", path, undecoded)
	}
	if cfg.Text == "" {
		return cfg, fmt.Errorf("load %s: text must not be empty", path)
	}
	if len(cfg.Sizes) == 0 {
		return cfg, fmt.Errorf("load %s: sizes must not be empty", path)
	}
	return cfg, nil
}
