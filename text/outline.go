package text

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"

	"github.com/gogpu/fbdraw"
	"github.com/gogpu/fbdraw/internal/pool"
)

// maxOutlineSize bounds the pixel size OutlineRasterizer accepts.
const maxOutlineSize = 1024

// OutlineRasterizer renders glyph outlines read with go-text/typesetting
// and filled with golang.org/x/image/vector. It implements
// fbdraw.GlyphRasterizer and needs no sized faces.
//
// An OutlineRasterizer is not safe for concurrent use.
type OutlineRasterizer struct {
	face  *font.Face
	dec   Decoder
	masks *pool.Pool
	vr    *vector.Rasterizer
}

var _ fbdraw.GlyphRasterizer = (*OutlineRasterizer)(nil)

// NewOutlineRasterizer parses TrueType or OpenType font data.
func NewOutlineRasterizer(data []byte, opts ...RasterizerOption) (*OutlineRasterizer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	cfg := defaultRasterizerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &OutlineRasterizer{
		face:  face,
		dec:   cfg.decoder,
		masks: pool.New(cfg.pooled),
	}, nil
}

// RasterizeNext implements fbdraw.GlyphRasterizer.
func (r *OutlineRasterizer) RasterizeNext(text []byte, offset, size int) (fbdraw.Glyph, bool) {
	if offset < 0 || offset >= len(text) || size <= 0 || size > maxOutlineSize {
		return fbdraw.Glyph{}, false
	}
	ch, n := r.dec.Decode(text[offset:])
	if n <= 0 {
		Logger().Debug("text: malformed input", "offset", offset)
		return fbdraw.Glyph{}, false
	}
	gid, ok := r.face.NominalGlyph(ch)
	if !ok || gid == 0 {
		Logger().Debug("text: no glyph", "rune", ch)
		return fbdraw.Glyph{}, false
	}
	outline, ok := r.face.GlyphData(gid).(font.GlyphOutline)
	if !ok {
		// bitmap and SVG glyphs
		Logger().Debug("text: glyph has no outline", "rune", ch)
		return fbdraw.Glyph{}, false
	}

	scale := float32(size) / float32(r.face.Upem())
	g := fbdraw.Glyph{
		AdvanceX: int(math.Round(float64(r.face.HorizontalAdvance(gid) * scale))),
		Bytes:    n,
	}

	b := outlineBounds(outline.Segments, scale)
	if b.Empty() {
		return g, true
	}
	g.Left = b.Min.X
	g.Top = -b.Min.Y
	g.Bitmap = r.fill(outline.Segments, scale, b)
	return g, true
}

// outlineBounds returns the pixel box of segs scaled by scale with y
// pointing down. Control points are included, so the box may be a little
// larger than the ink.
func outlineBounds(segs []opentype.Segment, scale float32) image.Rectangle {
	if len(segs) == 0 {
		return image.Rectangle{}
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, s := range segs {
		for _, p := range s.Args[:segmentArgs(s.Op)] {
			x, y := p.X*scale, -p.Y*scale
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

// segmentArgs returns how many of a segment's points op uses.
func segmentArgs(op opentype.SegmentOp) int {
	switch op {
	case opentype.SegmentOpQuadTo:
		return 2
	case opentype.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// fill rasterizes segs into a pooled A8 bitmap covering b.
func (r *OutlineRasterizer) fill(segs []opentype.Segment, scale float32, b image.Rectangle) *fbdraw.Bitmap {
	w, h := b.Dx(), b.Dy()
	if r.vr == nil {
		r.vr = vector.NewRasterizer(w, h)
	} else {
		r.vr.Reset(w, h)
	}
	vr := r.vr
	vr.DrawOp = draw.Src

	ox, oy := float32(b.Min.X), float32(b.Min.Y)
	pt := func(p opentype.SegmentPoint) (float32, float32) {
		return p.X*scale - ox, -p.Y*scale - oy
	}

	open := false
	for _, s := range segs {
		switch s.Op {
		case opentype.SegmentOpMoveTo:
			if open {
				vr.ClosePath()
			}
			vr.MoveTo(pt(s.Args[0]))
			open = true
		case opentype.SegmentOpLineTo:
			vr.LineTo(pt(s.Args[0]))
		case opentype.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			vr.QuadTo(bx, by, cx, cy)
		case opentype.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			vr.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		vr.ClosePath()
	}

	pix := r.masks.Get(w * h)
	dst := &image.Alpha{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
	vr.Draw(dst, dst.Rect, image.Opaque, image.Point{})
	return &fbdraw.Bitmap{Width: w, Height: h, Format: fbdraw.FormatA8, Pix: pix, Stride: w}
}

// Release implements fbdraw.GlyphRasterizer.
func (r *OutlineRasterizer) Release(g fbdraw.Glyph) {
	if g.Bitmap != nil {
		r.masks.Put(g.Bitmap.Pix)
	}
}
