package fbdraw

import "fmt"

// Format is the pixel layout of a Bitmap.
type Format uint8

const (
	// FormatXRGB8888 is opaque 24-bit color in a 32-bit word, bytes B, G, R, X.
	// Rows are copied onto the canvas unchanged.
	FormatXRGB8888 Format = iota + 1

	// FormatARGB8888 is 24-bit color with straight (non-premultiplied)
	// 8-bit alpha, bytes B, G, R, A.
	FormatARGB8888

	// FormatA8 is 8-bit coverage only. The color comes from the tint passed
	// to DrawImage. Glyph bitmaps use this format.
	FormatA8
)

// BytesPerPixel returns the pixel size of f, or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatXRGB8888, FormatARGB8888:
		return 4
	case FormatA8:
		return 1
	default:
		return 0
	}
}

// String returns a human-readable name.
func (f Format) String() string {
	switch f {
	case FormatXRGB8888:
		return "xrgb8888"
	case FormatARGB8888:
		return "argb8888"
	case FormatA8:
		return "a8"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Bitmap is a read-only source image for DrawImage.
type Bitmap struct {
	Width  int
	Height int
	Format Format

	// Pix holds Height rows. Row y starts at y*Stride.
	Pix []byte

	// Stride is the distance in bytes between rows. Zero means
	// Width*Format.BytesPerPixel().
	Stride int
}

// stride returns the effective row stride.
func (b *Bitmap) stride() int {
	if b.Stride > 0 {
		return b.Stride
	}
	return b.Width * b.Format.BytesPerPixel()
}

// Validate checks that the format is known and Pix can hold the geometry.
func (b *Bitmap) Validate() error {
	bpp := b.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, b.Format)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, b.Width, b.Height)
	}
	if b.Width == 0 || b.Height == 0 {
		return nil
	}
	stride := b.stride()
	if stride < b.Width*bpp {
		return fmt.Errorf("%w: stride %d for width %d", ErrInvalidBitmap, stride, b.Width)
	}
	if need := (b.Height-1)*stride + b.Width*bpp; len(b.Pix) < need {
		return fmt.Errorf("%w: %d bytes, need %d", ErrInvalidBitmap, len(b.Pix), need)
	}
	return nil
}

// BlendChannel moves the 8-bit channel d toward s by a/256:
//
//	d + ((s - d) * a) >> 8
//
// computed on signed integers with an arithmetic shift. a = 255 therefore
// stops one step short of s; callers handle 0 and 255 separately.
func BlendChannel(d, s, a uint8) uint8 {
	return uint8(int(d) + (int(s)-int(d))*int(a)>>8)
}

// DrawImage composites bm onto the canvas with its top-left corner at (x, y).
//
// Parts of the bitmap outside the canvas are cropped. tint supplies the
// color for FormatA8 bitmaps and is ignored otherwise. A nil bitmap, an
// unknown format or a bitmap whose buffer is too small draws nothing.
func (e *Engine) DrawImage(x, y int, bm *Bitmap, tint Color) {
	if bm == nil {
		return
	}
	if err := bm.Validate(); err != nil {
		e.logger().Debug("fbdraw: skip bitmap", "err", err)
		return
	}

	c, ok := clipImage(x, y, bm.Width, bm.Height, e.canvas.Width, e.canvas.Height)
	if !ok {
		return
	}

	cv := e.BeginDraw(c.dx, c.dy, c.w, c.h)
	e.rows(c.dy, c.dy+c.h, c.w, func(y1, y2 int) {
		blit(cv, c.dx, y1, bm, c.sx, c.sy+(y1-c.dy), c.w, y2-y1, tint)
	})
}

// clip is a bitmap region mapped onto the canvas: w x h pixels from source
// (sx, sy) land at destination (dx, dy).
type clip struct {
	dx, dy int
	sx, sy int
	w, h   int
}

// clipImage crops a w x h image placed at (x, y) to a cw x ch canvas.
func clipImage(x, y, w, h, cw, ch int) (clip, bool) {
	c := clip{dx: x, dy: y, w: w, h: h}
	if c.dx < 0 {
		c.w += c.dx
		c.sx -= c.dx
		c.dx = 0
	}
	if c.dy < 0 {
		c.h += c.dy
		c.sy -= c.dy
		c.dy = 0
	}
	if c.dx+c.w > cw {
		c.w = cw - c.dx
	}
	if c.dy+c.h > ch {
		c.h = ch - c.dy
	}
	return c, c.w > 0 && c.h > 0
}

// blit composites h rows of w pixels from bm at (sx, sy) onto cv at
// (dx, dy). The region must already be clipped to both.
func blit(cv *Canvas, dx, dy int, bm *Bitmap, sx, sy, w, h int, tint Color) {
	stride := bm.stride()

	switch bm.Format {
	case FormatXRGB8888:
		for i := 0; i < h; i++ {
			off := (sy+i)*stride + sx*4
			copy(cv.Row(dy+i, dx, dx+w), bm.Pix[off:off+w*4])
		}

	case FormatARGB8888:
		for i := 0; i < h; i++ {
			off := (sy+i)*stride + sx*4
			src := bm.Pix[off : off+w*4]
			dst := cv.Row(dy+i, dx, dx+w)
			for j := 0; j < len(src); j += 4 {
				switch a := src[j+3]; a {
				case 0:
				case 255:
					dst[j+0] = src[j+0]
					dst[j+1] = src[j+1]
					dst[j+2] = src[j+2]
				default:
					dst[j+0] = BlendChannel(dst[j+0], src[j+0], a)
					dst[j+1] = BlendChannel(dst[j+1], src[j+1], a)
					dst[j+2] = BlendChannel(dst[j+2], src[j+2], a)
				}
			}
		}

	case FormatA8:
		r, g, b := tint.R(), tint.G(), tint.B()
		for i := 0; i < h; i++ {
			off := (sy+i)*stride + sx
			src := bm.Pix[off : off+w]
			dst := cv.Row(dy+i, dx, dx+w)
			for j, a := range src {
				d := dst[j*4 : j*4+4]
				switch a {
				case 0:
				case 255:
					putPixel(d, tint)
				default:
					d[0] = BlendChannel(d[0], b, a)
					d[1] = BlendChannel(d[1], g, a)
					d[2] = BlendChannel(d[2], r, a)
				}
			}
		}
	}
}
