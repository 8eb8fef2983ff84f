package fbdraw

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/fbdraw/internal/parallel"
	"github.com/gogpu/fbdraw/surface"
)

// Engine draws into an off-screen canvas and copies the region touched since
// the last flush to a display surface.
//
// Every drawing call paints into the canvas and grows the dirty rectangle;
// Flush copies the dirty part out and resets it. An engine whose surface
// failed to map keeps drawing into its canvas but its Flush does nothing.
//
// Engine is not safe for concurrent use. Large operations fan out to an
// internal worker pool, but each call returns only after all of its work is
// done.
type Engine struct {
	canvas    *Canvas
	dirty     Rect
	surf      surface.Surface
	pool      *parallel.WorkerPool
	threshold int
	raster    GlyphRasterizer
	log       *slog.Logger
}

// New creates an engine with a black width x height canvas.
// Non-positive dimensions clamp to 1.
//
// Example:
//
//	mem := surface.NewMemorySurface(800, 480, surface.FormatXRGB8888)
//	eng := fbdraw.New(800, 480, fbdraw.WithSurface(mem))
//	defer eng.Close()
func New(width, height int, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	e := &Engine{
		canvas:    newCanvas(width, height),
		dirty:     EmptyRect(width, height),
		threshold: o.threshold,
		raster:    o.rasterizer,
		log:       o.logger,
	}
	if o.workers != 1 {
		e.pool = parallel.NewWorkerPool(o.workers)
	}
	if o.surface != nil {
		_ = e.attach("", "", o.surface)
	}
	return e
}

// Open maps a display surface with the named backend and returns an engine
// whose canvas matches the surface size. An empty backend selects the best
// available one (see surface.OpenBest).
//
// Example:
//
//	eng, err := fbdraw.Open("fbdev", "/dev/fb0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
func Open(backend, device string, opts ...Option) (*Engine, error) {
	s, err := openSurface(backend, device)
	if err != nil {
		o := defaultOptions()
		for _, opt := range opts {
			opt(&o)
		}
		l := o.logger
		if l == nil {
			l = Logger()
		}
		l.Warn("fbdraw: map failed", "backend", backend, "device", device, "err", err)
		return nil, &MapError{Backend: backend, Device: device, Err: err}
	}

	buf := s.Buffer()
	e := New(buf.Width, buf.Height, opts...)
	// The mapped surface replaces any WithSurface option, which the engine owns.
	e.detach()
	if err := e.attach(backend, device, s); err != nil {
		_ = s.Close()
		e.pool.Close()
		return nil, err
	}
	return e, nil
}

func openSurface(backend, device string) (surface.Surface, error) {
	if backend == "" {
		return surface.OpenBest(device)
	}
	return surface.Open(backend, device)
}

// Map closes the current surface, if any, and maps a new one with the named
// backend. On failure the engine is left without a surface and the returned
// error is a *MapError.
func (e *Engine) Map(backend, device string) error {
	e.detach()

	s, err := openSurface(backend, device)
	if err != nil {
		return e.mapFailed(backend, device, err)
	}
	if err := e.attach(backend, device, s); err != nil {
		_ = s.Close()
		return err
	}
	return nil
}

// Attach replaces the current surface with s. The engine takes ownership of
// s and closes it on Close or on the next Map/Attach. If s is nil or its
// buffer is unusable the engine is left without a surface, s is not
// retained, and the returned error is a *MapError. Re-attaching the current
// surface after its buffer went bad closes it.
//
// Pending dirty regions are kept, so the next Flush after a successful
// Attach copies everything drawn while the engine was inert.
func (e *Engine) Attach(s surface.Surface) error {
	if s != e.surf {
		e.detach()
	}
	return e.attach("", "", s)
}

func (e *Engine) attach(backend, device string, s surface.Surface) error {
	if s == nil {
		return e.mapFailed(backend, device, ErrNoSurface)
	}
	buf := s.Buffer()
	if err := buf.Validate(); err != nil {
		if e.surf == s {
			e.detach()
		}
		e.surf = nil
		return e.mapFailed(backend, device, err)
	}

	e.surf = s
	e.logger().Info("fbdraw: surface mapped",
		"backend", backend,
		"width", buf.Width,
		"height", buf.Height,
		"stride", buf.Stride,
		"format", buf.Format)
	if buf.Width != e.canvas.Width || buf.Height != e.canvas.Height {
		e.logger().Debug("fbdraw: surface size differs from canvas",
			"surface", buf.Bounds(), "canvas", e.canvas.Bounds())
	}
	return nil
}

func (e *Engine) mapFailed(backend, device string, err error) error {
	e.logger().Warn("fbdraw: map failed", "backend", backend, "device", device, "err", err)
	return &MapError{Backend: backend, Device: device, Err: err}
}

func (e *Engine) detach() {
	if e.surf == nil {
		return
	}
	if err := e.surf.Close(); err != nil {
		e.logger().Warn("fbdraw: surface close failed", "err", err)
	}
	e.surf = nil
}

// Close stops the worker pool and closes the surface.
// Close is safe to call multiple times.
func (e *Engine) Close() error {
	e.pool.Close()
	if e.surf == nil {
		return nil
	}
	err := e.surf.Close()
	e.surf = nil
	return err
}

// Mapped reports whether the engine has a surface to flush to.
func (e *Engine) Mapped() bool {
	return e.surf != nil
}

// Surface returns the attached surface, or nil.
func (e *Engine) Surface() surface.Surface {
	return e.surf
}

// Canvas returns the canvas without marking anything dirty.
func (e *Engine) Canvas() *Canvas {
	return e.canvas
}

// Width returns the canvas width.
func (e *Engine) Width() int {
	return e.canvas.Width
}

// Height returns the canvas height.
func (e *Engine) Height() int {
	return e.canvas.Height
}

// BeginDraw grows the dirty rectangle to cover [x, x+w) x [y, y+h) and
// returns the canvas for writing. The region is not clamped; Flush clamps.
func (e *Engine) BeginDraw(x, y, w, h int) *Canvas {
	e.dirty = e.dirty.Union(x, y, w, h)
	return e.canvas
}

// Dirty returns the region drawn since the last flush, unclamped.
func (e *Engine) Dirty() Rect {
	return e.dirty
}

// Invalidate marks the whole canvas dirty.
func (e *Engine) Invalidate() {
	e.BeginDraw(0, 0, e.canvas.Width, e.canvas.Height)
}

// Clear fills the whole canvas with c and marks it dirty.
func (e *Engine) Clear(c Color) {
	e.DrawRect(0, 0, e.canvas.Width, e.canvas.Height, c)
}

// Flush copies the dirty region of the canvas to the surface and commits it.
//
// The region is clamped to the canvas and to the surface buffer. An empty
// region resets the dirty rectangle and returns nil without touching the
// surface. Otherwise the rows are copied, the dirty rectangle is reset and
// the surface commit is called; a commit error is returned wrapped.
//
// Without a surface Flush does nothing and keeps the dirty rectangle.
func (e *Engine) Flush() error {
	if e.surf == nil {
		return nil
	}

	buf := e.surf.Buffer()
	r := e.dirty.Clamp(min(e.canvas.Width, buf.Width), min(e.canvas.Height, buf.Height))
	e.dirty = EmptyRect(e.canvas.Width, e.canvas.Height)
	if r.Empty() {
		return nil
	}

	switch buf.Format {
	case surface.FormatRGB565:
		e.rows(r.Y1, r.Y2, r.Dx(), func(y1, y2 int) {
			for y := y1; y < y2; y++ {
				toRGB565(buf.Row(y, r.X1, r.X2), e.canvas.Row(y, r.X1, r.X2))
			}
		})
	default:
		e.rows(r.Y1, r.Y2, r.Dx(), func(y1, y2 int) {
			for y := y1; y < y2; y++ {
				copy(buf.Row(y, r.X1, r.X2), e.canvas.Row(y, r.X1, r.X2))
			}
		})
	}

	e.logger().Debug("fbdraw: flush", "rect", r)
	if err := e.surf.Commit(r.Image()); err != nil {
		e.logger().Warn("fbdraw: commit failed", "rect", r, "err", err)
		return fmt.Errorf("fbdraw: commit %v: %w", r, err)
	}
	return nil
}

// toRGB565 converts canvas pixels in src to little-endian RGB565 in dst.
func toRGB565(dst, src []byte) {
	for i, j := 0, 0; i+3 < len(src); i, j = i+4, j+2 {
		b, g, r := uint16(src[i]), uint16(src[i+1]), uint16(src[i+2])
		binary.LittleEndian.PutUint16(dst[j:], (r>>3)<<11|(g>>2)<<5|b>>3)
	}
}

// rows runs fn over the row range [y1, y2) of an operation width pixels
// wide. Operations of at least threshold pixels are split into disjoint
// bands of at least threshold pixels each on the worker pool.
func (e *Engine) rows(y1, y2, width int, fn func(y1, y2 int)) {
	n := y2 - y1
	if n <= 0 {
		return
	}
	if e.pool == nil || n*width < e.threshold {
		fn(y1, y2)
		return
	}

	minRows := max(1, e.threshold/max(width, 1))
	e.pool.ForBands(n, minRows, func(lo, hi int) {
		fn(y1+lo, y1+hi)
	})
}

func (e *Engine) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return Logger()
}
