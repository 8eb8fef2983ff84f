package text

import (
	"fmt"
	"slices"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/fbdraw/internal/cache"
)

// FaceSource supplies font faces by pixel size.
type FaceSource interface {
	// Face returns the face for a pixel size, or false if the source does
	// not support that size.
	Face(size int) (font.Face, bool)

	// HasGlyph reports whether the font has its own glyph for r.
	HasGlyph(r rune) bool

	// Close releases the faces the source created.
	Close() error
}

// sizedFaces is an LRU of faces keyed by pixel size. Evicted faces are
// closed.
type sizedFaces struct {
	cfg   sourceConfig
	faces *cache.Cache[int, font.Face]
	open  func(size int) (font.Face, error)
}

func newSizedFaces(cfg sourceConfig, open func(size int) (font.Face, error)) *sizedFaces {
	return &sizedFaces{
		cfg: cfg,
		faces: cache.New[int, font.Face](cfg.cacheSize).OnEvict(func(_ int, f font.Face) {
			_ = f.Close()
		}),
		open: open,
	}
}

func (s *sizedFaces) face(size int) (font.Face, bool) {
	if size <= 0 || (s.cfg.maxSize > 0 && size > s.cfg.maxSize) {
		return nil, false
	}
	created := false
	f, err := s.faces.GetOrCreate(size, func() (font.Face, error) {
		created = true
		return s.open(size)
	})
	if err != nil {
		Logger().Warn("text: face creation failed", "size", size, "err", err)
		return nil, false
	}
	if created {
		Logger().Debug("text: new face", "size", size, "cached", s.faces.Len())
	}
	return f, true
}

func (s *sizedFaces) close() error {
	s.faces.Clear()
	return nil
}

// OpenTypeSource is a FaceSource for TrueType and OpenType fonts parsed
// with golang.org/x/image/font/opentype.
type OpenTypeSource struct {
	font  *opentype.Font
	buf   sfnt.Buffer
	faces *sizedFaces
}

// NewOpenTypeSource parses font data.
//
// Example:
//
//	src, err := text.NewOpenTypeSource(goregular.TTF, text.WithMaxSize(96))
func NewOpenTypeSource(data []byte, opts ...SourceOption) (*OpenTypeSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &OpenTypeSource{font: f}
	s.faces = newSizedFaces(cfg, func(size int) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    float64(size),
			DPI:     cfg.dpi,
			Hinting: cfg.hinting,
		})
	})
	return s, nil
}

// Face implements FaceSource.
func (s *OpenTypeSource) Face(size int) (font.Face, bool) {
	return s.faces.face(size)
}

// HasGlyph implements FaceSource.
func (s *OpenTypeSource) HasGlyph(r rune) bool {
	idx, err := s.font.GlyphIndex(&s.buf, r)
	return err == nil && idx != 0
}

// NumGlyphs returns the number of glyphs in the font.
func (s *OpenTypeSource) NumGlyphs() int {
	return s.font.NumGlyphs()
}

// Name returns the font family name, or "" if the font has none.
func (s *OpenTypeSource) Name() string {
	name, err := s.font.Name(&s.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Close implements FaceSource.
func (s *OpenTypeSource) Close() error {
	return s.faces.close()
}

// TrueTypeSource is a FaceSource for TrueType fonts rendered with
// github.com/golang/freetype.
type TrueTypeSource struct {
	font  *truetype.Font
	faces *sizedFaces
}

// NewTrueTypeSource parses TrueType font data.
func NewTrueTypeSource(data []byte, opts ...SourceOption) (*TrueTypeSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &TrueTypeSource{font: f}
	s.faces = newSizedFaces(cfg, func(size int) (font.Face, error) {
		return truetype.NewFace(f, &truetype.Options{
			Size:    float64(size),
			DPI:     cfg.dpi,
			Hinting: cfg.hinting,
		}), nil
	})
	return s, nil
}

// Face implements FaceSource.
func (s *TrueTypeSource) Face(size int) (font.Face, bool) {
	return s.faces.face(size)
}

// HasGlyph implements FaceSource.
func (s *TrueTypeSource) HasGlyph(r rune) bool {
	return s.font.Index(r) != 0
}

// Close implements FaceSource.
func (s *TrueTypeSource) Close() error {
	return s.faces.close()
}

// FixedSource is a FaceSource that serves one pre-rendered face.
type FixedSource struct {
	face  font.Face
	sizes []int
}

// NewFixedSource returns a source serving face for the listed sizes. With no
// sizes every positive size gets the face.
//
// Example:
//
//	src := text.NewFixedSource(basicfont.Face7x13, 13)
func NewFixedSource(face font.Face, sizes ...int) *FixedSource {
	return &FixedSource{face: face, sizes: slices.Clone(sizes)}
}

// Face implements FaceSource.
func (s *FixedSource) Face(size int) (font.Face, bool) {
	if size <= 0 {
		return nil, false
	}
	if len(s.sizes) > 0 && !slices.Contains(s.sizes, size) {
		return nil, false
	}
	return s.face, true
}

// HasGlyph implements FaceSource.
//
// basicfont faces substitute U+FFFD for missing runes, so their ranges are
// checked directly.
func (s *FixedSource) HasGlyph(r rune) bool {
	if bf, ok := s.face.(*basicfont.Face); ok {
		for _, rng := range bf.Ranges {
			if r >= rng.Low && r < rng.High {
				return true
			}
		}
		return false
	}
	_, ok := s.face.GlyphAdvance(r)
	return ok
}

// Close implements FaceSource. The wrapped face is owned by the caller and
// is not closed.
func (s *FixedSource) Close() error {
	return nil
}
