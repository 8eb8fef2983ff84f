package fbdraw

import (
	"testing"
)

// blockRasterizer renders each ASCII letter as a solid w x h A8 block and
// rejects everything else. Lower-case letters are one pixel wider than
// their advance so neighbouring glyphs overlap.
type blockRasterizer struct {
	released int
	issued   int
}

func (r *blockRasterizer) RasterizeNext(text []byte, offset, size int) (Glyph, bool) {
	if offset >= len(text) || size <= 0 {
		return Glyph{}, false
	}
	ch := text[offset]
	switch {
	case ch == ' ':
		r.issued++
		return Glyph{AdvanceX: size, Bytes: 1}, true
	case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z':
	default:
		return Glyph{}, false
	}

	w := size
	if ch >= 'a' {
		w++
	}
	pix := make([]byte, w*size)
	for i := range pix {
		pix[i] = 255
	}
	r.issued++
	return Glyph{
		Bitmap:   &Bitmap{Width: w, Height: size, Format: FormatA8, Pix: pix},
		Left:     0,
		Top:      size,
		AdvanceX: size,
		Bytes:    1,
	}, true
}

func (r *blockRasterizer) Release(Glyph) { r.released++ }

// =============================================================================
// Layout Tests
// =============================================================================

func TestLayout(t *testing.T) {
	r := &blockRasterizer{}
	e := New(100, 50, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	var got []GlyphPlacement
	for p := range e.Layout(10, 20, []byte("AB C"), 4) {
		got = append(got, p)
	}

	wantXY := [][2]int{{10, 16}, {14, 16}, {18, 20}, {22, 16}}
	if len(got) != len(wantXY) {
		t.Fatalf("placements = %d, want %d", len(got), len(wantXY))
	}
	for i, p := range got {
		if p.X != wantXY[i][0] || p.Y != wantXY[i][1] {
			t.Errorf("placement %d at (%d,%d), want (%d,%d)", i, p.X, p.Y, wantXY[i][0], wantXY[i][1])
		}
	}
	if !e.Dirty().Empty() {
		t.Error("Layout must not draw")
	}
}

func TestLayoutRangedTwice(t *testing.T) {
	r := &blockRasterizer{}
	e := New(100, 50, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	seq := e.Layout(10, 20, []byte("AB"), 4)
	for pass := 0; pass < 2; pass++ {
		var xs []int
		for p := range seq {
			xs = append(xs, p.X)
			r.Release(p.Glyph)
		}
		if len(xs) != 2 || xs[0] != 10 || xs[1] != 14 {
			t.Errorf("pass %d: x = %v, want [10 14]", pass, xs)
		}
	}
}

func TestLayoutStopsEarly(t *testing.T) {
	r := &blockRasterizer{}
	e := New(100, 50, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	n := 0
	for p := range e.Layout(0, 10, []byte("ABCDEF"), 4) {
		r.Release(p.Glyph)
		n++
		if n == 2 {
			break
		}
	}

	if r.issued != 2 || r.released != 2 {
		t.Errorf("issued %d, released %d; want 2, 2", r.issued, r.released)
	}
}

// zeroBytesRasterizer returns a glyph that consumes no input.
type zeroBytesRasterizer struct{ released int }

func (r *zeroBytesRasterizer) RasterizeNext([]byte, int, int) (Glyph, bool) {
	return Glyph{AdvanceX: 3}, true
}
func (r *zeroBytesRasterizer) Release(Glyph) { r.released++ }

func TestLayoutZeroBytesStops(t *testing.T) {
	r := &zeroBytesRasterizer{}
	e := New(10, 10, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	n := 0
	for range e.Layout(0, 0, []byte("x"), 4) {
		n++
	}
	if n != 0 {
		t.Errorf("yielded %d glyphs, want 0", n)
	}
	if r.released != 1 {
		t.Errorf("released = %d, want 1 (unyielded glyph)", r.released)
	}
}

func TestLayoutWithoutRasterizer(t *testing.T) {
	e := New(10, 10, WithWorkers(1))
	defer e.Close()

	for range e.Layout(0, 0, []byte("abc"), 8) {
		t.Fatal("Layout without rasterizer should be empty")
	}
}

// =============================================================================
// DrawText Tests
// =============================================================================

func TestDrawText(t *testing.T) {
	r := &blockRasterizer{}
	e := New(40, 20, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	e.DrawString(2, 10, "AB", 4, White)

	assertOnly(t, e.Canvas(), White, Black, func(x, y int) bool {
		return x >= 2 && x < 10 && y >= 6 && y < 10
	})
	if e.Dirty() != (Rect{2, 6, 10, 10}) {
		t.Errorf("dirty = %v, want (2,6)-(10,10)", e.Dirty())
	}
	if r.released != r.issued {
		t.Errorf("released %d of %d glyphs", r.released, r.issued)
	}
}

func TestDrawTextStopsAtUnrenderable(t *testing.T) {
	r := &blockRasterizer{}
	e := New(40, 20, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	// '#' has no glyph: only "A" is drawn.
	e.DrawText(0, 10, []byte("A#B"), 4, Red)

	assertOnly(t, e.Canvas(), Red, Black, func(x, y int) bool {
		return x < 4 && y >= 6 && y < 10
	})
	if r.issued != 1 || r.released != 1 {
		t.Errorf("issued %d, released %d; want 1, 1", r.issued, r.released)
	}
}

func TestDrawTextOverlappingGlyphs(t *testing.T) {
	// Lower-case blocks are 5 wide with advance 4, so each overlaps the
	// next by one column. Half coverage makes overlap visible.
	half := &halfRasterizer{}
	serial := New(60, 20, WithWorkers(1), WithRasterizer(half))
	defer serial.Close()
	par := New(60, 20, WithWorkers(4), WithParallelThreshold(1), WithRasterizer(half))
	defer par.Close()

	for _, e := range []*Engine{serial, par} {
		e.DrawString(0, 12, "abcdefgh", 8, White)
	}

	a, b := serial.Canvas().Pix, par.Canvas().Pix
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: serial %d, parallel %d", i, a[i], b[i])
		}
	}

	// Column 8 is covered by glyphs 0 and 1: blended twice.
	once := BlendChannel(0, 255, 128)
	twice := BlendChannel(once, 255, 128)
	if got := serial.Canvas().Pixel(8, 10).R(); got != twice {
		t.Errorf("overlap channel = %d, want %d", got, twice)
	}
	if got := serial.Canvas().Pixel(7, 10).R(); got != once {
		t.Errorf("single channel = %d, want %d", got, once)
	}
}

// halfRasterizer is blockRasterizer with 50% coverage.
type halfRasterizer struct{ blockRasterizer }

func (r *halfRasterizer) RasterizeNext(text []byte, offset, size int) (Glyph, bool) {
	g, ok := r.blockRasterizer.RasterizeNext(text, offset, size)
	if ok && g.Bitmap != nil {
		for i := range g.Bitmap.Pix {
			g.Bitmap.Pix[i] = 128
		}
	}
	return g, ok
}

func TestDrawTextClipped(t *testing.T) {
	r := &blockRasterizer{}
	e := New(10, 10, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	// Baseline at y=2 puts most of each glyph above the canvas.
	e.DrawString(-2, 2, "AB", 4, Green)

	assertOnly(t, e.Canvas(), Green, Black, func(x, y int) bool {
		return x < 6 && y < 2
	})
}

func TestDrawTextNoRasterizer(t *testing.T) {
	e := New(10, 10, WithWorkers(1))
	defer e.Close()

	e.DrawString(0, 5, "abc", 4, White)
	if !e.Dirty().Empty() {
		t.Error("DrawText without rasterizer should do nothing")
	}
}

func TestMeasureText(t *testing.T) {
	r := &blockRasterizer{}
	e := New(10, 10, WithWorkers(1), WithRasterizer(r))
	defer e.Close()

	adv, n := e.MeasureText([]byte("Ab c#d"), 5)
	if adv != 20 || n != 4 {
		t.Errorf("MeasureText = %d, %d; want 20, 4", adv, n)
	}
	if r.released != r.issued {
		t.Errorf("released %d of %d glyphs", r.released, r.issued)
	}
	if !e.Dirty().Empty() {
		t.Error("MeasureText must not draw")
	}
}
