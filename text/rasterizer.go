package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fbdraw"
	"github.com/gogpu/fbdraw/internal/pool"
)

// Rasterizer renders characters with faces from a FaceSource.
// It implements fbdraw.GlyphRasterizer.
//
// Masks are copied out of the face into pooled buffers; Release returns
// them. A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	src   FaceSource
	dec   Decoder
	masks *pool.Pool
}

var _ fbdraw.GlyphRasterizer = (*Rasterizer)(nil)

// NewRasterizer returns a rasterizer drawing glyphs from src.
func NewRasterizer(src FaceSource, opts ...RasterizerOption) *Rasterizer {
	cfg := defaultRasterizerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Rasterizer{
		src:   src,
		dec:   cfg.decoder,
		masks: pool.New(cfg.pooled),
	}
}

// RasterizeNext implements fbdraw.GlyphRasterizer.
//
// It returns false when offset is past the end of text, the bytes at
// offset are malformed, the source has no face for size, or the font has
// no glyph for the character.
func (r *Rasterizer) RasterizeNext(text []byte, offset, size int) (fbdraw.Glyph, bool) {
	if offset < 0 || offset >= len(text) {
		return fbdraw.Glyph{}, false
	}
	ch, n := r.dec.Decode(text[offset:])
	if n <= 0 {
		Logger().Debug("text: malformed input", "offset", offset)
		return fbdraw.Glyph{}, false
	}
	face, ok := r.src.Face(size)
	if !ok {
		Logger().Debug("text: unsupported size", "size", size)
		return fbdraw.Glyph{}, false
	}
	if !r.src.HasGlyph(ch) {
		Logger().Debug("text: no glyph", "rune", ch)
		return fbdraw.Glyph{}, false
	}

	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, ch)
	if !ok {
		return fbdraw.Glyph{}, false
	}

	g := fbdraw.Glyph{
		Left:     dr.Min.X,
		Top:      -dr.Min.Y,
		AdvanceX: advance.Round(),
		Bytes:    n,
	}
	if !dr.Empty() {
		g.Bitmap = r.copyMask(dr.Dx(), dr.Dy(), mask, maskp)
	}
	return g, true
}

// copyMask copies the w x h coverage of mask at mp into a pooled A8 bitmap.
// Faces reuse their mask between calls, so the glyph cannot keep it.
func (r *Rasterizer) copyMask(w, h int, mask image.Image, mp image.Point) *fbdraw.Bitmap {
	pix := r.masks.Get(w * h)
	if a, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			i := a.PixOffset(mp.X, mp.Y+y)
			copy(pix[y*w:(y+1)*w], a.Pix[i:i+w])
		}
	} else {
		dst := &image.Alpha{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
		draw.Draw(dst, dst.Rect, mask, mp, draw.Src)
	}
	return &fbdraw.Bitmap{Width: w, Height: h, Format: fbdraw.FormatA8, Pix: pix, Stride: w}
}

// Release implements fbdraw.GlyphRasterizer.
func (r *Rasterizer) Release(g fbdraw.Glyph) {
	if g.Bitmap != nil {
		r.masks.Put(g.Bitmap.Pix)
	}
}

// Pooled returns the number of released masks waiting for reuse.
func (r *Rasterizer) Pooled() int {
	return r.masks.Len()
}
