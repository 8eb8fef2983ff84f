package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownEncoding is returned by DecoderByName for names it does
	// not recognize.
	ErrUnknownEncoding = errors.New("text: unknown encoding")
)
