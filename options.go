package fbdraw

import (
	"log/slog"

	"github.com/gogpu/fbdraw/surface"
)

// DefaultParallelThreshold is the pixel count above which fills, image
// compositing and flushes are split into row bands across the worker pool.
const DefaultParallelThreshold = 64 * 1024

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Serial engine with a bitmap font
//	eng := fbdraw.New(800, 480,
//	    fbdraw.WithWorkers(1),
//	    fbdraw.WithRasterizer(text.NewRasterizer(src)),
//	)
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	workers    int
	threshold  int
	rasterizer GlyphRasterizer
	surface    surface.Surface
	logger     *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		workers:   0, // GOMAXPROCS
		threshold: DefaultParallelThreshold,
	}
}

// WithWorkers sets the number of worker goroutines used for data-parallel
// drawing. n <= 0 selects GOMAXPROCS; n == 1 disables the pool and runs
// everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithParallelThreshold sets the minimum number of pixels an operation must
// touch before it is split across workers, and the minimum size of each
// split. Values below 1 are treated as 1.
func WithParallelThreshold(pixels int) Option {
	return func(o *options) {
		o.threshold = max(pixels, 1)
	}
}

// WithRasterizer sets the glyph rasterizer used by DrawText.
// Without a rasterizer DrawText draws nothing.
func WithRasterizer(r GlyphRasterizer) Option {
	return func(o *options) {
		o.rasterizer = r
	}
}

// WithSurface attaches s as the flush target. The engine takes ownership
// and closes s on Close. If s cannot be attached the engine starts inert;
// the failure is logged.
func WithSurface(s surface.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithLogger sets the logger for this engine only, overriding the package
// logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
