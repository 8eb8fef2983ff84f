package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Decoder reads one character from the start of a byte string.
type Decoder interface {
	// Decode returns the first character of p and the number of bytes it
	// occupies. n is 0 when p is empty or does not start with a valid
	// character.
	Decode(p []byte) (r rune, n int)
}

// UTF8 decodes UTF-8. It is the default decoder.
var UTF8 Decoder = utf8Decoder{}

type utf8Decoder struct{}

func (utf8Decoder) Decode(p []byte) (rune, int) {
	r, n := utf8.DecodeRune(p)
	if r == utf8.RuneError && n <= 1 {
		return 0, 0
	}
	return r, n
}

// maxCharBytes is the longest character any supported encoding produces.
const maxCharBytes = 4

// EncodingDecoder decodes characters in a legacy encoding from
// golang.org/x/text, such as GBK or Shift-JIS.
//
// An EncodingDecoder keeps transformer state and is not safe for concurrent
// use.
type EncodingDecoder struct {
	dec *encoding.Decoder
	buf [2 * utf8.UTFMax]byte
}

// NewEncodingDecoder returns a decoder for enc.
func NewEncodingDecoder(enc encoding.Encoding) *EncodingDecoder {
	return &EncodingDecoder{dec: enc.NewDecoder()}
}

// Decode implements Decoder.
//
// It feeds the transformer one, two, three and four bytes in turn until a
// whole character comes out. Bytes the encoding maps to U+FFFD are treated
// as malformed.
func (d *EncodingDecoder) Decode(p []byte) (rune, int) {
	for n := 1; n <= min(maxCharBytes, len(p)); n++ {
		d.dec.Reset()
		nDst, nSrc, err := d.dec.Transform(d.buf[:], p[:n], false)
		if errors.Is(err, transform.ErrShortSrc) {
			continue
		}
		if err != nil || nDst == 0 {
			return 0, 0
		}
		r, _ := utf8.DecodeRune(d.buf[:nDst])
		if r == utf8.RuneError {
			return 0, 0
		}
		return r, nSrc
	}
	return 0, 0
}

// DecoderByName returns the decoder for an encoding name or label as
// understood by the WHATWG Encoding Standard, for example "utf-8", "gbk",
// "gb18030", "big5" or "shift_jis". Names are case-insensitive.
func DecoderByName(name string) (Decoder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return UTF8, nil
	}
	return NewEncodingDecoder(enc), nil
}
