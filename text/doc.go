// Package text provides glyph rasterizers for fbdraw.
//
// A Rasterizer turns the next character of a byte string into an A8
// coverage mask. It combines a Decoder, which reads one character from the
// input, with a FaceSource, which supplies a golang.org/x/image/font.Face
// for each pixel size:
//
//   - NewOpenTypeSource parses TrueType and OpenType fonts with
//     golang.org/x/image/font/opentype.
//   - NewTrueTypeSource uses github.com/golang/freetype.
//   - NewFixedSource wraps a single pre-rendered face such as
//     basicfont.Face7x13.
//
// OutlineRasterizer is an alternative that reads glyph outlines with
// github.com/go-text/typesetting and fills them with golang.org/x/image/vector.
//
// # Example usage
//
//	src, err := text.NewOpenTypeSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close()
//
//	eng := fbdraw.New(800, 480, fbdraw.WithRasterizer(text.NewRasterizer(src)))
//	eng.DrawString(10, 40, "Hello", 24, fbdraw.White)
//
// # Encodings
//
// Input is UTF-8 by default. Legacy encodings such as GBK or Shift-JIS are
// decoded with golang.org/x/text; see DecoderByName.
//
// Rasterizers are not safe for concurrent use.
package text
