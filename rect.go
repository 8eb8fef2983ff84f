package fbdraw

import (
	"fmt"
	"image"
)

// Rect is a half-open pixel rectangle [X1, X2) x [Y1, Y2).
//
// The engine uses Rect to accumulate the region touched since the last
// flush. An empty accumulator is stored as EmptyRect(w, h), whose minimum
// corner sits at the far edge of the canvas and whose maximum corner sits at
// the origin, so growing it is a plain min/max with no special case.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// EmptyRect returns the canonical empty rectangle for a w x h canvas.
func EmptyRect(w, h int) Rect {
	return Rect{X1: w, Y1: h, X2: 0, Y2: 0}
}

// Empty reports whether r contains no pixels.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Union returns the smallest rectangle containing r and [x, x+w) x [y, y+h).
// No clamping is applied.
func (r Rect) Union(x, y, w, h int) Rect {
	return Rect{
		X1: min(r.X1, x),
		Y1: min(r.Y1, y),
		X2: max(r.X2, x+w),
		Y2: max(r.Y2, y+h),
	}
}

// Clamp intersects r with [0, w) x [0, h).
// The result may be degenerate; check Empty.
func (r Rect) Clamp(w, h int) Rect {
	return Rect{
		X1: max(r.X1, 0),
		Y1: max(r.Y1, 0),
		X2: min(r.X2, w),
		Y2: min(r.Y2, h),
	}
}

// Dx returns the width of r, or 0 if r is empty.
func (r Rect) Dx() int {
	if r.Empty() {
		return 0
	}
	return r.X2 - r.X1
}

// Dy returns the height of r, or 0 if r is empty.
func (r Rect) Dy() int {
	if r.Empty() {
		return 0
	}
	return r.Y2 - r.Y1
}

// Image converts r to an image.Rectangle. Empty rectangles become the zero
// rectangle.
func (r Rect) Image() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
