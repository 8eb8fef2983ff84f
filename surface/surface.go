// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
)

// Surface is a physically mapped display surface.
//
// Buffer exposes the mapped pixel memory; the engine writes the dirty part
// of its canvas into it row by row and then calls Commit with the same
// rectangle so the implementation can make the region visible (a no-op for
// live framebuffer memory, a present/upload for other backends).
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
type Surface interface {
	// Buffer returns the mapped pixel buffer. The returned slice stays
	// valid until Close.
	Buffer() Buffer

	// Commit makes the pixels inside r visible. r is already clamped to
	// the buffer bounds and is never empty.
	Commit(r image.Rectangle) error

	// Close unmaps the buffer and releases the device.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// Buffer describes mapped pixel memory.
type Buffer struct {
	// Pix holds Height rows of Stride bytes each.
	Pix []byte

	// Width and Height are the visible dimensions in pixels.
	Width  int
	Height int

	// Stride is the distance in bytes between the starts of two rows.
	// It is at least Width*Format.BytesPerPixel() and may include padding.
	Stride int

	// Format is the pixel layout of Pix.
	Format PixelFormat
}

// Bounds returns the buffer rectangle.
func (b Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Row returns the bytes of pixels [x1, x2) in row y.
// The caller must pass coordinates inside the buffer.
func (b Buffer) Row(y, x1, x2 int) []byte {
	bpp := b.Format.BytesPerPixel()
	off := y*b.Stride + x1*bpp
	return b.Pix[off : off+(x2-x1)*bpp]
}

// Validate checks that the buffer is large enough for its geometry.
func (b Buffer) Validate() error {
	bpp := b.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("%w: format %v", ErrUnsupportedDepth, b.Format)
	}
	if b.Width <= 0 || b.Height <= 0 || b.Stride < b.Width*bpp {
		return fmt.Errorf("%w: %dx%d stride %d", ErrBadGeometry, b.Width, b.Height, b.Stride)
	}
	if len(b.Pix) < (b.Height-1)*b.Stride+b.Width*bpp {
		return fmt.Errorf("%w: buffer of %d bytes too small for %dx%d stride %d",
			ErrBadGeometry, len(b.Pix), b.Width, b.Height, b.Stride)
	}
	return nil
}
