// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// PixelFormat represents the pixel storage format of a mapped buffer.
type PixelFormat uint8

const (
	// FormatXRGB8888 stores 0x00RRGGBB as a little-endian uint32
	// (bytes B, G, R, X). This is the canvas layout, so rows copy directly.
	FormatXRGB8888 PixelFormat = iota + 1

	// FormatRGB565 stores 5-6-5 bit RGB as a little-endian uint16.
	FormatRGB565
)

// BytesPerPixel returns the number of bytes per pixel, or 0 for an unknown
// format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatXRGB8888:
		return 4
	case FormatRGB565:
		return 2
	default:
		return 0
	}
}

// String returns a human-readable name.
func (f PixelFormat) String() string {
	switch f {
	case FormatXRGB8888:
		return "xrgb8888"
	case FormatRGB565:
		return "rgb565"
	default:
		return "unknown"
	}
}

// FormatForDepth returns the pixel format for a framebuffer bit depth.
func FormatForDepth(bitsPerPixel int) (PixelFormat, bool) {
	switch bitsPerPixel {
	case 32:
		return FormatXRGB8888, true
	case 16:
		return FormatRGB565, true
	default:
		return 0, false
	}
}

// ParseFormat parses a format name as returned by String.
func ParseFormat(name string) (PixelFormat, bool) {
	switch name {
	case "xrgb8888", "":
		return FormatXRGB8888, true
	case "rgb565":
		return FormatRGB565, true
	default:
		return 0, false
	}
}
