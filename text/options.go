package text

import "golang.org/x/image/font"

// SourceOption configures FaceSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FaceSource.
type sourceConfig struct {
	maxSize   int
	cacheSize int
	hinting   font.Hinting
	dpi       float64
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		maxSize:   256,
		cacheSize: 8,
		hinting:   font.HintingFull,
		dpi:       72, // one point per pixel
	}
}

// WithMaxSize sets the largest pixel size a source accepts.
// Larger sizes produce no glyph. A value of 0 removes the limit.
func WithMaxSize(n int) SourceOption {
	return func(c *sourceConfig) {
		c.maxSize = max(n, 0)
	}
}

// WithCacheSize sets how many sized faces are kept open.
// A value of 0 keeps every face.
func WithCacheSize(n int) SourceOption {
	return func(c *sourceConfig) {
		c.cacheSize = max(n, 0)
	}
}

// WithHinting sets the hinting mode for outline fonts.
func WithHinting(h font.Hinting) SourceOption {
	return func(c *sourceConfig) {
		c.hinting = h
	}
}

// WithDPI sets the resolution used to convert sizes to pixels.
// The default of 72 makes a size equal to its pixel height.
func WithDPI(dpi float64) SourceOption {
	return func(c *sourceConfig) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// RasterizerOption configures a Rasterizer.
type RasterizerOption func(*rasterizerConfig)

type rasterizerConfig struct {
	decoder Decoder
	pooled  int
}

func defaultRasterizerConfig() rasterizerConfig {
	return rasterizerConfig{
		decoder: UTF8,
		pooled:  64,
	}
}

// WithDecoder sets the character decoder. The default is UTF8.
func WithDecoder(d Decoder) RasterizerOption {
	return func(c *rasterizerConfig) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithPooledMasks sets how many released masks of each size class are kept
// for reuse. A value of 0 keeps all of them.
func WithPooledMasks(n int) RasterizerOption {
	return func(c *rasterizerConfig) {
		c.pooled = max(n, 0)
	}
}
