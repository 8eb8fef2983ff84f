// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface maps display memory for the fbdraw engine.
//
// A Surface exposes a Buffer (mapped pixels, geometry, stride and pixel
// format) and a Commit hook that makes an updated region visible. The
// engine owns the drawing; a surface only receives finished rows.
//
// # Backends
//
//   - fbdev: a Linux framebuffer device such as /dev/fb0, mapped with
//     mmap. Optionally switches a virtual console to graphics mode so the
//     kernel text console does not draw over the image.
//   - memory: a heap buffer, used for headless runs and tests.
//
// # Registry
//
// Backends register themselves by name and priority:
//
//	surface.Register("drm", 120, func(device string) (surface.Surface, error) {
//	    return openDRM(device)
//	}, drmAvailable)
//
// and are opened by name or by best availability:
//
//	s, err := surface.Open("memory", "320x240@rgb565")
//	s, err := surface.OpenBest("")
//
// # Pixel formats
//
// FormatXRGB8888 matches the engine's canvas layout byte for byte.
// FormatRGB565 is converted per pixel on flush.
package surface
