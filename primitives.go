package fbdraw

// DrawPixel sets one pixel. Coordinates outside the canvas are ignored.
func (e *Engine) DrawPixel(x, y int, c Color) {
	if !e.canvas.In(x, y) {
		return
	}
	e.BeginDraw(x, y, 1, 1).SetPixel(x, y, c)
}

// DrawRect fills the rectangle [x, x+w) x [y, y+h), clipped to the canvas.
func (e *Engine) DrawRect(x, y, w, h int, c Color) {
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > e.canvas.Width {
		w = e.canvas.Width - x
	}
	if y < 0 {
		h += y
		y = 0
	}
	if y+h > e.canvas.Height {
		h = e.canvas.Height - y
	}
	if w <= 0 || h <= 0 {
		return
	}

	cv := e.BeginDraw(x, y, w, h)
	e.rows(y, y+h, w, func(y1, y2 int) {
		for yy := y1; yy < y2; yy++ {
			fillRow(cv.Row(yy, x, x+w), c)
		}
	})
}

// DrawCircle fills the disk of radius r around (x, y).
//
// The center is first clamped into the canvas, so a circle centered off
// screen is drawn around the nearest edge pixel instead.
func (e *Engine) DrawCircle(x, y, r int, c Color) {
	x = min(max(x, 0), e.canvas.Width-1)
	y = min(max(y, 0), e.canvas.Height-1)

	x0 := max(x-r, 0)
	x1 := min(x+r, e.canvas.Width-1)
	y0 := max(y-r, 0)
	y1 := min(y+r, e.canvas.Height-1)

	for i := y0; i <= y1; i++ {
		dy := i - y
		for j := x0; j <= x1; j++ {
			dx := j - x
			if dx*dx+dy*dy <= r*r {
				e.DrawPixel(j, i, c)
			}
		}
	}
}

// DrawLine draws a one pixel wide line from (x1, y1) to (x2, y2), both ends
// included.
//
// The stepping axis is chosen by the integer slope (y2-y1)/(x2-x1): when it
// truncates to zero the line steps along x, otherwise along y. The bounding
// box of the endpoints is marked dirty; pixels that fall outside the canvas
// are skipped.
func (e *Engine) DrawLine(x1, y1, x2, y2 int, c Color) {
	xmin, xmax := min(x1, x2), max(x1, x2)
	ymin, ymax := min(y1, y2), max(y1, y2)
	cv := e.BeginDraw(xmin, ymin, xmax-xmin+1, ymax-ymin+1)

	switch {
	case x1 == x2:
		for y := ymin; y <= ymax; y++ {
			cv.SetPixel(x1, y, c)
		}
	case (y2-y1)/(x2-x1) == 0:
		step := 1
		if x2 < x1 {
			step = -1
		}
		for x := x1; x != x2+step; x += step {
			cv.SetPixel(x, (y2-y1)*(x-x1)/(x2-x1)+y1, c)
		}
	default:
		step := 1
		if y2 < y1 {
			step = -1
		}
		for y := y1; y != y2+step; y += step {
			cv.SetPixel((x2-x1)*(y-y1)/(y2-y1)+x1, y, c)
		}
	}
}

// DrawBorder draws the one pixel outline of the rectangle [x, x+w) x [y, y+h).
func (e *Engine) DrawBorder(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	e.DrawRect(x, y, w, 1, c)
	if h > 1 {
		e.DrawRect(x, y+h-1, w, 1, c)
		e.DrawRect(x, y+1, 1, h-2, c)
		if w > 1 {
			e.DrawRect(x+w-1, y+1, 1, h-2, c)
		}
	}
}
