// Command fbdemo draws a test scene with fbdraw and flushes it to a display
// surface.
//
// On a Linux device with a framebuffer:
//
//	fbdemo -backend fbdev -device /dev/fb0
//
// Anywhere else the in-memory backend is used; -out saves the canvas:
//
//	fbdemo -backend memory -device 800x480 -out demo.png
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/gogpu/fbdraw"
	"github.com/gogpu/fbdraw/surface"
	"github.com/gogpu/fbdraw/text"
)

// palette is the finger color table of the touch demo.
var palette = []fbdraw.Color{
	fbdraw.Red,
	fbdraw.Orange,
	fbdraw.Yellow,
	fbdraw.Green,
	fbdraw.Cyan,
	fbdraw.Blue,
	fbdraw.Purple,
	fbdraw.White,
	fbdraw.Black,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run returns errors instead of exiting so the deferred Close always puts
// the console back in text mode.
func run(args []string) error {
	fs := flag.NewFlagSet("fbdemo", flag.ContinueOnError)
	var (
		backend  = fs.String("backend", "", "surface backend (empty selects the best available)")
		device   = fs.String("device", "", "device path or memory geometry such as 800x480")
		output   = fs.String("out", "", "save the canvas as PNG")
		fontPath = fs.String("font", "", "TrueType font file (default Go Regular)")
		renderer = fs.String("text", "opentype", "glyph rasterizer: opentype, truetype, outline or fixed")
		encoding = fs.String("encoding", "utf-8", "text encoding of the banner")
		banner   = fs.String("banner", "Hello, fbdraw!", "text to draw")
		image    = fs.String("image", "", "image to draw in the corner")
		workers  = fs.Int("workers", 0, "worker goroutines (0 uses GOMAXPROCS, 1 disables the pool)")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fbdraw.SetLogger(logger)
	text.SetLogger(logger)

	dec, err := text.DecoderByName(*encoding)
	if err != nil {
		return err
	}
	msg, err := encodeBanner(*banner, *encoding)
	if err != nil {
		return fmt.Errorf("failed to encode banner: %w", err)
	}
	raster, closeFont, err := newRasterizer(*renderer, *fontPath, dec)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	defer closeFont()

	eng, err := fbdraw.Open(*backend, *device,
		fbdraw.WithRasterizer(raster),
		fbdraw.WithWorkers(*workers))
	if err != nil {
		return fmt.Errorf("failed to open display: %w", err)
	}
	defer eng.Close()

	drawScene(eng, msg)
	if *image != "" {
		drawImage(eng, *image)
	}

	if err := eng.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	if *output != "" {
		if err := eng.Canvas().SavePNG(*output); err != nil {
			return fmt.Errorf("failed to save: %w", err)
		}
		log.Printf("Demo saved to %s (%dx%d)\n", *output, eng.Width(), eng.Height())
	}
	if mem, ok := eng.Surface().(*surface.MemorySurface); ok {
		if r, ok := mem.LastCommit(); ok {
			logger.Info("committed", "rect", r)
		}
	}
	return nil
}

func newRasterizer(kind, path string, dec text.Decoder) (fbdraw.GlyphRasterizer, func(), error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		data = b
	}

	var src text.FaceSource
	switch kind {
	case "opentype":
		s, err := text.NewOpenTypeSource(data)
		if err != nil {
			return nil, nil, err
		}
		src = s
	case "truetype":
		s, err := text.NewTrueTypeSource(data)
		if err != nil {
			return nil, nil, err
		}
		src = s
	case "fixed":
		src = text.NewFixedSource(basicfont.Face7x13)
	case "outline":
		r, err := text.NewOutlineRasterizer(data, text.WithDecoder(dec))
		if err != nil {
			return nil, nil, err
		}
		return r, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown rasterizer %q", kind)
	}
	return text.NewRasterizer(src, text.WithDecoder(dec)), func() { _ = src.Close() }, nil
}

// encodeBanner converts the UTF-8 command-line text to the chosen encoding.
func encodeBanner(s, name string) ([]byte, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

func drawScene(eng *fbdraw.Engine, banner []byte) {
	w, h := eng.Width(), eng.Height()

	eng.Clear(fbdraw.White)

	// Palette bar along the top.
	bw := w / len(palette)
	for i, c := range palette {
		eng.DrawRect(i*bw, 0, bw, h/10, c)
	}
	eng.DrawBorder(0, 0, w, h/10, fbdraw.Black)

	// Fan of lines from the lower-left corner.
	for i, c := range palette[:7] {
		eng.DrawLine(0, h-1, w-1-i*w/8, h/5, c)
	}

	// Touch points.
	for i, c := range palette[:5] {
		eng.DrawCircle(w/6+i*w/6, h/2, 10, c)
		eng.DrawCircle(w/6+i*w/6, h/2+40, 12, fbdraw.White)
		eng.DrawCircle(w/6+i*w/6, h/2+40, 10, c)
	}

	size := max(12, h/12)
	adv, _ := eng.MeasureText(banner, size)
	x := max(0, (w-adv)/2)
	eng.DrawText(x, h/4+size, banner, size, fbdraw.Black)
}

func drawImage(eng *fbdraw.Engine, path string) {
	bm, err := fbdraw.LoadBitmap(path)
	if err != nil {
		log.Printf("Skipping image: %v", err)
		return
	}
	eng.DrawImage(eng.Width()-bm.Width, eng.Height()-bm.Height, bm, fbdraw.Black)
}
