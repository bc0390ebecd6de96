// Command atlasdemo drives the glyph and image caches through simulated
// frames of scrolling text and prints atlas statistics.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/glyph"
	"github.com/gogpu/atlas/imagecache"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		frames     = flag.Int("frames", 0, "number of frames to simulate (overrides config)")
		size       = flag.Int("size", 0, "glyph atlas size (overrides config)")
		output     = flag.String("output", "", "write the first glyph atlas to this PNG file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		atlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *frames > 0 {
		cfg.Frames = *frames
	}
	if *size > 0 {
		cfg.Glyph.Atlas.Size = *size
	}

	glyphs, err := glyph.NewCache(cfg.Glyph)
	if err != nil {
		log.Fatalf("Failed to create glyph cache: %v", err)
	}
	defer func() { _ = glyphs.Close() }()

	images, err := imagecache.New(cfg.Images)
	if err != nil {
		log.Fatalf("Failed to create image cache: %v", err)
	}

	mirrors := map[*atlas.TextureAtlas]*mirror{}
	uncached := 0
	for frame := 0; frame < cfg.Frames; frame++ {
		uncached += drawTextFrame(glyphs, cfg, frame)
		drawImageFrame(images, frame)

		for _, a := range append(glyphs.Atlases(), images.Atlas()) {
			m, ok := mirrors[a]
			if !ok {
				m = newMirror(a)
				mirrors[a] = m
			}
			if err := a.Flush(m); err != nil {
				log.Fatalf("Failed to upload atlas: %v", err)
			}
		}

		if frame%60 == 0 {
			glyphs.Prune()
		}
	}

	gs := glyphs.Stats()
	is := images.Atlas().Stats()
	log.Printf("glyphs: %d packed in %d atlases, %.1f%% used, %d hits, %d misses, %d evictions, %d uncached draws",
		gs.Glyphs, gs.Atlases, glyphs.Percentage(), gs.Hits, gs.Misses, gs.Evictions, uncached)
	log.Printf("images: %d packed, %.1f%% used, %d hits, %d misses, %d evictions",
		is.Items, images.Atlas().PercentageUsed(), is.Hits, is.Misses, is.Evictions)

	if *output != "" {
		as := glyphs.Atlases()
		if len(as) == 0 {
			log.Fatal("No glyph atlas to save")
		}
		if err := savePNG(*output, mirrors[as[0]].img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Atlas saved to %s", *output)
	}
}

// drawTextFrame requests the glyphs of one frame of scrolling text and
// returns the number of glyphs that had to be drawn uncached.
func drawTextFrame(c *glyph.Cache, cfg demoConfig, frame int) int {
	runes := []rune(cfg.Text)
	start := frame % len(runes)
	line := string(runes[start:]) + string(runes[:start])
	fi := glyph.FontInfo{Family: glyph.DefaultFamily, Size: cfg.Sizes[frame%len(cfg.Sizes)]}

	uncached := 0
	for _, r := range line {
		_, err := c.Glyph(glyph.Info{Code: r, Font: fi})
		switch {
		case err == nil:
		case errors.Is(err, atlas.ErrAtlasFull), errors.Is(err, atlas.ErrItemTooLarge):
			uncached++
		default:
			log.Fatalf("Failed to get glyph: %v", err)
		}
	}
	return uncached
}

// drawImageFrame requests a rotating set of icon-like images.
func drawImageFrame(c *imagecache.Cache, frame int) {
	for i := 0; i < 4; i++ {
		n := (frame/10 + i) % 40
		w := 16 + (n%5)*8
		h := 16 + (n%3)*12
		icon := image.NewNRGBA(image.Rect(0, 0, w, h))
		col := color.NRGBA{R: uint8(n * 6), G: uint8(255 - n*6), B: uint8(n * 3), A: 255} //nolint:gosec // n < 40
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				icon.SetNRGBA(x, y, col)
			}
		}
		if _, _, err := c.Add(icon); err != nil && !errors.Is(err, atlas.ErrAtlasFull) {
			log.Fatalf("Failed to add image: %v", err)
		}
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
