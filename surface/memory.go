// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// MemorySurface is a heap-backed surface. It stands in for a display in
// headless runs and tests: committed regions are recorded and the contents
// can be inspected with Snapshot.
//
// Example:
//
//	s := surface.NewMemorySurface(800, 480, surface.FormatXRGB8888)
//	defer s.Close()
//
//	eng := fbdraw.New(800, 480, fbdraw.WithSurface(s))
//	eng.DrawRect(10, 10, 100, 50, fbdraw.Red)
//	_ = eng.Flush()
//	img := s.Snapshot()
type MemorySurface struct {
	buf     Buffer
	commits []image.Rectangle
	closed  bool
}

// NewMemorySurface creates a memory surface with the given dimensions.
// Non-positive dimensions clamp to 1 and an unknown format falls back to
// FormatXRGB8888.
func NewMemorySurface(width, height int, format PixelFormat) *MemorySurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if format.BytesPerPixel() == 0 {
		format = FormatXRGB8888
	}

	stride := width * format.BytesPerPixel()
	return &MemorySurface{
		buf: Buffer{
			Pix:    make([]byte, stride*height),
			Width:  width,
			Height: height,
			Stride: stride,
			Format: format,
		},
	}
}

// Buffer returns the backing buffer.
func (s *MemorySurface) Buffer() Buffer {
	return s.buf
}

// Commit records r.
func (s *MemorySurface) Commit(r image.Rectangle) error {
	if s.closed {
		return ErrClosed
	}
	s.commits = append(s.commits, r)
	return nil
}

// Commits returns every committed rectangle in order.
func (s *MemorySurface) Commits() []image.Rectangle {
	out := make([]image.Rectangle, len(s.commits))
	copy(out, s.commits)
	return out
}

// LastCommit returns the most recent committed rectangle.
func (s *MemorySurface) LastCommit() (image.Rectangle, bool) {
	if len(s.commits) == 0 {
		return image.Rectangle{}, false
	}
	return s.commits[len(s.commits)-1], true
}

// Snapshot returns the current contents as an opaque RGBA image.
// The returned image is a copy.
func (s *MemorySurface) Snapshot() *image.RGBA {
	img := image.NewRGBA(s.buf.Bounds())
	for y := 0; y < s.buf.Height; y++ {
		for x := 0; x < s.buf.Width; x++ {
			img.SetRGBA(x, y, s.pixel(x, y))
		}
	}
	return img
}

func (s *MemorySurface) pixel(x, y int) color.RGBA {
	row := s.buf.Row(y, x, x+1)
	switch s.buf.Format {
	case FormatRGB565:
		v := binary.LittleEndian.Uint16(row)
		r := uint8(v>>11) & 0x1F
		g := uint8(v>>5) & 0x3F
		b := uint8(v) & 0x1F
		return color.RGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 0xFF}
	default:
		return color.RGBA{R: row[2], G: row[1], B: row[0], A: 0xFF}
	}
}

// Close marks the surface closed. Close is idempotent.
func (s *MemorySurface) Close() error {
	s.closed = true
	return nil
}

// ParseGeometry parses a memory device string of the form "WxH" or
// "WxH@format", for example "800x480" or "320x240@rgb565".
func ParseGeometry(device string) (width, height int, format PixelFormat, err error) {
	dims, fmtName, _ := strings.Cut(device, "@")
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q is not WxH", ErrBadGeometry, device)
	}
	if width, err = strconv.Atoi(ws); err != nil || width <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: bad width in %q", ErrBadGeometry, device)
	}
	if height, err = strconv.Atoi(hs); err != nil || height <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: bad height in %q", ErrBadGeometry, device)
	}
	if format, ok = ParseFormat(fmtName); !ok {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedDepth, fmtName)
	}
	return width, height, format, nil
}
