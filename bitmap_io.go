package fbdraw

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// NewBitmap allocates a zeroed bitmap. Zeroed FormatARGB8888 and FormatA8
// bitmaps are fully transparent.
func NewBitmap(width, height int, format Format) (*Bitmap, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidBitmap, width, height)
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Format: format,
		Pix:    make([]byte, width*height*bpp),
		Stride: width * bpp,
	}, nil
}

// LoadBitmap decodes the image file at path.
// PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadBitmap(path string) (*Bitmap, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("fbdraw: load bitmap: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	bm, err := DecodeBitmap(f)
	if err != nil {
		return nil, fmt.Errorf("fbdraw: load bitmap %s: %w", path, err)
	}
	return bm, nil
}

// DecodeBitmap decodes an image from r and converts it with BitmapFromImage.
func DecodeBitmap(r io.Reader) (*Bitmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return BitmapFromImage(img), nil
}

type opaquer interface {
	Opaque() bool
}

// BitmapFromImage converts img to a Bitmap.
//
// *image.Alpha becomes FormatA8, images that report themselves opaque
// become FormatXRGB8888, and everything else becomes FormatARGB8888 with
// straight alpha.
func BitmapFromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if a, ok := img.(*image.Alpha); ok {
		bm := &Bitmap{Width: w, Height: h, Format: FormatA8, Pix: make([]byte, w*h), Stride: w}
		for y := 0; y < h; y++ {
			off := a.PixOffset(b.Min.X, b.Min.Y+y)
			copy(bm.Pix[y*w:(y+1)*w], a.Pix[off:off+w])
		}
		return bm
	}

	format := FormatARGB8888
	if o, ok := img.(opaquer); ok && o.Opaque() {
		format = FormatXRGB8888
	}

	bm := &Bitmap{Width: w, Height: h, Format: format, Pix: make([]byte, w*h*4), Stride: w * 4}
	for y := 0; y < h; y++ {
		row := bm.Pix[y*bm.Stride:]
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			p := row[x*4 : x*4+4]
			p[0] = c.B
			p[1] = c.G
			p[2] = c.R
			if format == FormatARGB8888 {
				p[3] = c.A
			}
		}
	}
	return bm
}
