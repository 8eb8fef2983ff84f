// Package fbdraw is a software renderer for raw framebuffers.
//
// # Overview
//
// fbdraw draws points, lines, rectangles, circles, bitmaps and text into an
// off-screen canvas and copies only the region touched since the last
// flush to a mapped display surface, such as a Linux framebuffer device.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fbdraw"
//	    "github.com/gogpu/fbdraw/text"
//	    "golang.org/x/image/font/gofont/goregular"
//	)
//
//	src, _ := text.NewOpenTypeSource(goregular.TTF)
//	eng, err := fbdraw.Open("fbdev", "/dev/fb0",
//	    fbdraw.WithRasterizer(text.NewRasterizer(src)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	eng.Clear(fbdraw.Black)
//	eng.DrawRect(10, 10, 200, 100, fbdraw.Blue)
//	eng.DrawCircle(300, 200, 40, fbdraw.Yellow)
//	eng.DrawString(20, 300, "hello", 24, fbdraw.White)
//	_ = eng.Flush()
//
// # Dirty Region
//
// Every drawing call grows a single dirty rectangle; Flush clamps it to the
// canvas, copies those rows to the surface and commits them. Draw many
// things, then flush once per update.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rectangles are half-open: [x, x+w) x [y, y+h)
//   - Text is positioned by its baseline origin
//
// # Geometry Never Fails
//
// Shapes and images partly or fully outside the canvas are cropped; nothing
// outside the canvas is ever written. Text stops at the first character the
// rasterizer cannot render. The only reported failures are surface mapping
// (MapError) and surface commit errors from Flush.
//
// # Concurrency
//
// An Engine must be driven from one goroutine at a time. Large fills,
// image composites and flushes are split into disjoint row bands that run
// on an internal worker pool (see WithWorkers and WithParallelThreshold).
package fbdraw

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
