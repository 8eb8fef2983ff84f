package fbdraw

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// bytesPerPixel is the canvas pixel size: one little-endian 0x00RRGGBB word.
const bytesPerPixel = 4

// Canvas is the off-screen pixel grid the engine draws into.
//
// Pixels are stored as little-endian 0x00RRGGBB words (bytes B, G, R, X),
// Stride bytes per row. This matches an XRGB8888 framebuffer so a flush can
// copy rows directly.
//
// Writing through the Canvas directly bypasses dirty tracking; obtain it
// from Engine.BeginDraw so the region is flushed.
type Canvas struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// newCanvas allocates a zeroed (black) canvas.
func newCanvas(width, height int) *Canvas {
	stride := width * bytesPerPixel
	return &Canvas{
		Pix:    make([]byte, stride*height),
		Width:  width,
		Height: height,
		Stride: stride,
	}
}

// In reports whether (x, y) lies on the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Pixel returns the color at (x, y), or Black outside the canvas.
func (c *Canvas) Pixel(x, y int) Color {
	if !c.In(x, y) {
		return Black
	}
	i := y*c.Stride + x*bytesPerPixel
	return getPixel(c.Pix[i:])
}

// SetPixel sets the color at (x, y). Out of bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if !c.In(x, y) {
		return
	}
	i := y*c.Stride + x*bytesPerPixel
	putPixel(c.Pix[i:], col)
}

// Row returns the bytes of pixels [x1, x2) in row y.
// The caller must pass coordinates inside the canvas.
func (c *Canvas) Row(y, x1, x2 int) []byte {
	off := y*c.Stride + x1*bytesPerPixel
	return c.Pix[off : off+(x2-x1)*bytesPerPixel]
}

// Clear fills the entire canvas with col.
func (c *Canvas) Clear(col Color) {
	fillRow(c.Pix, col)
}

// fillRow writes col into every pixel of row, doubling the filled prefix
// with copy.
func fillRow(row []byte, col Color) {
	if len(row) < bytesPerPixel {
		return
	}
	putPixel(row, col)
	for n := bytesPerPixel; n < len(row); n *= 2 {
		copy(row[n:], row[:n])
	}
}

// ToImage converts the canvas to an opaque image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	for y := 0; y < c.Height; y++ {
		src := c.Row(y, 0, c.Width)
		dst := img.Pix[y*img.Stride : y*img.Stride+c.Width*4]
		for i := 0; i < len(src); i += 4 {
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = 0xFF
		}
	}
	return img
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return ColorModel
}
