package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fbdraw"
)

func TestNewOutlineRasterizerErrors(t *testing.T) {
	if _, err := NewOutlineRasterizer(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("nil data err = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewOutlineRasterizer([]byte("not a font at all")); err == nil {
		t.Error("garbage data should fail to parse")
	}
}

func TestOutlineRasterizer(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatalf("NewOutlineRasterizer: %v", err)
	}

	g, ok := r.RasterizeNext([]byte("H"), 0, 40)
	if !ok {
		t.Fatal("RasterizeNext('H') failed")
	}
	defer r.Release(g)

	if g.Bitmap == nil {
		t.Fatal("'H' has no bitmap")
	}
	if err := g.Bitmap.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if g.Bitmap.Format != fbdraw.FormatA8 {
		t.Errorf("Format = %v, want a8", g.Bitmap.Format)
	}
	if g.Top <= 20 || g.Top > 40 {
		t.Errorf("Top = %d, want cap height in (20, 40]", g.Top)
	}
	if g.Left < 0 || g.Left > 6 {
		t.Errorf("Left = %d, want a small side bearing", g.Left)
	}
	if g.Bytes != 1 {
		t.Errorf("Bytes = %d, want 1", g.Bytes)
	}
	if maxCoverage(g.Bitmap) < 200 {
		t.Errorf("max coverage = %d, want solid stems", maxCoverage(g.Bitmap))
	}
}

func TestOutlineRasterizerMatchesFaceAdvance(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	src, err := NewOpenTypeSource(goregular.TTF, WithHinting(font.HintingNone))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	face, _ := src.Face(32)

	for _, ch := range "AWim." {
		g, ok := r.RasterizeNext([]byte(string(ch)), 0, 32)
		if !ok {
			t.Fatalf("RasterizeNext(%q) failed", ch)
		}
		r.Release(g)

		adv, _ := face.GlyphAdvance(ch)
		if d := g.AdvanceX - adv.Round(); d < -1 || d > 1 {
			t.Errorf("%q advance = %d, x/image says %d", ch, g.AdvanceX, adv.Round())
		}
	}
}

func TestOutlineRasterizerSpace(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	g, ok := r.RasterizeNext([]byte(" x"), 0, 16)
	if !ok {
		t.Fatal("RasterizeNext(' ') failed")
	}
	if g.Bitmap != nil {
		t.Error("space should have no bitmap")
	}
	if g.AdvanceX <= 0 || g.Bytes != 1 {
		t.Errorf("space advance %d, bytes %d", g.AdvanceX, g.Bytes)
	}
	r.Release(g)
}

func TestOutlineRasterizerRejects(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		text   string
		offset int
		size   int
	}{
		{"offset past end", "A", 1, 16},
		{"zero size", "A", 0, 0},
		{"huge size", "A", 0, maxOutlineSize + 1},
		{"malformed", "\xc3", 0, 16},
		{"no glyph", "中", 0, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := r.RasterizeNext([]byte(tt.text), tt.offset, tt.size); ok {
				t.Error("RasterizeNext succeeded, want false")
			}
		})
	}
}

func TestOutlineRasterizerReusesMasks(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	g, _ := r.RasterizeNext([]byte("O"), 0, 24)
	first := maxCoverage(g.Bitmap)
	r.Release(g)
	if r.masks.Len() != 1 {
		t.Fatalf("pooled = %d, want 1", r.masks.Len())
	}

	g, _ = r.RasterizeNext([]byte("O"), 0, 24)
	defer r.Release(g)
	if r.masks.Len() != 0 {
		t.Error("mask buffer was not reused")
	}
	if maxCoverage(g.Bitmap) != first {
		t.Error("reused buffer produced a different mask")
	}
}

func TestOutlineRasterizerDrawsOnEngine(t *testing.T) {
	r, err := NewOutlineRasterizer(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	e := fbdraw.New(120, 40, fbdraw.WithWorkers(1), fbdraw.WithRasterizer(r))
	defer e.Close()

	e.DrawString(4, 30, "fbdraw", 24, fbdraw.Yellow)

	if e.Dirty().Empty() {
		t.Error("dirty region is empty")
	}
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if e.Canvas().Pixel(x, y) != fbdraw.Black {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("nothing drawn")
	}
}
