package fbdraw

import "iter"

// GlyphRasterizer renders text one character at a time.
//
// Implementations live in the text package.
type GlyphRasterizer interface {
	// RasterizeNext renders the character starting at text[offset] at the
	// given pixel size. It returns false when the text ends, the bytes are
	// malformed, the size is unsupported or the font has no glyph for the
	// character.
	RasterizeNext(text []byte, offset, size int) (Glyph, bool)

	// Release returns the glyph's bitmap to the rasterizer. The glyph must
	// not be used afterwards.
	Release(g Glyph)
}

// Glyph is one rasterized character.
type Glyph struct {
	// Bitmap is the coverage mask, usually FormatA8. It may be nil for
	// blank characters such as spaces.
	Bitmap *Bitmap

	// Left is the horizontal offset from the pen position to the bitmap's
	// left edge.
	Left int

	// Top is the distance from the baseline up to the bitmap's top edge.
	Top int

	// AdvanceX is how far the pen moves after this glyph.
	AdvanceX int

	// Bytes is the number of input bytes the character occupied.
	Bytes int
}

// GlyphPlacement is a glyph positioned on the canvas.
type GlyphPlacement struct {
	// X and Y are the canvas coordinates of the bitmap's top-left corner.
	X, Y  int
	Glyph Glyph
}

// Layout returns the placements of text drawn with its baseline origin at
// (x, y), one per character, without drawing anything.
//
// The sequence is lazy: each step rasterizes the next character. It ends at
// the end of text or at the first character the rasterizer rejects.
// Every yielded glyph belongs to the consumer, which must pass it to the
// rasterizer's Release. Without a rasterizer the sequence is empty.
func (e *Engine) Layout(x, y int, text []byte, size int) iter.Seq[GlyphPlacement] {
	r := e.raster
	return func(yield func(GlyphPlacement) bool) {
		if r == nil {
			return
		}
		px := x
		for i := 0; i < len(text); {
			g, ok := r.RasterizeNext(text, i, size)
			if !ok {
				return
			}
			if g.Bytes <= 0 {
				r.Release(g)
				return
			}
			if !yield(GlyphPlacement{X: px + g.Left, Y: y - g.Top, Glyph: g}) {
				return
			}
			px += g.AdvanceX
			i += g.Bytes
		}
	}
}

// DrawText draws text with its baseline origin at (x, y) in color c.
//
// Layout stops at the first character the rasterizer rejects; characters
// before it stay drawn. Without a rasterizer DrawText does nothing.
func (e *Engine) DrawText(x, y int, text []byte, size int, c Color) {
	if e.raster == nil || len(text) == 0 {
		return
	}

	var placed []GlyphPlacement
	for p := range e.Layout(x, y, text, size) {
		placed = append(placed, p)
	}
	defer func() {
		for _, p := range placed {
			e.raster.Release(p.Glyph)
		}
	}()

	e.drawGlyphs(placed, c)
}

// DrawString is DrawText for a string.
func (e *Engine) DrawString(x, y int, s string, size int, c Color) {
	e.DrawText(x, y, []byte(s), size, c)
}

// MeasureText returns the total advance of text and the number of bytes
// that would be drawn before layout stops.
func (e *Engine) MeasureText(text []byte, size int) (advance, n int) {
	for p := range e.Layout(0, 0, text, size) {
		advance += p.Glyph.AdvanceX
		n += p.Glyph.Bytes
		e.raster.Release(p.Glyph)
	}
	return advance, n
}

// glyphClip is a placed glyph cropped to the canvas.
type glyphClip struct {
	bm *Bitmap
	clip
}

// drawGlyphs composites placed glyphs in order.
//
// The union of the glyph rectangles is split into disjoint row bands; each
// band composites every glyph restricted to its rows, so bands never share
// a destination pixel even when glyph boxes overlap.
func (e *Engine) drawGlyphs(placed []GlyphPlacement, c Color) {
	clips := make([]glyphClip, 0, len(placed))
	u := EmptyRect(e.canvas.Width, e.canvas.Height)
	for _, p := range placed {
		bm := p.Glyph.Bitmap
		if bm == nil || bm.Validate() != nil {
			continue
		}
		cl, ok := clipImage(p.X, p.Y, bm.Width, bm.Height, e.canvas.Width, e.canvas.Height)
		if !ok {
			continue
		}
		clips = append(clips, glyphClip{bm: bm, clip: cl})
		u = u.Union(cl.dx, cl.dy, cl.w, cl.h)
	}
	if u.Empty() {
		return
	}

	cv := e.BeginDraw(u.X1, u.Y1, u.Dx(), u.Dy())
	e.rows(u.Y1, u.Y2, u.Dx(), func(y1, y2 int) {
		for _, g := range clips {
			r1 := max(g.dy, y1)
			r2 := min(g.dy+g.h, y2)
			if r1 >= r2 {
				continue
			}
			blit(cv, g.dx, r1, g.bm, g.sx, g.sy+(r1-g.dy), g.w, r2-r1, c)
		}
	})
}
