package fbdraw

import "image/color"

// Color is an opaque 24-bit color packed as 0x00RRGGBB.
// The top byte is ignored.
type Color uint32

// Named colors.
const (
	Black  Color = 0x000000
	White  Color = 0xFFFFFF
	Red    Color = 0xFF0000
	Orange Color = 0xFFA500
	Yellow Color = 0xFFFF00
	Green  Color = 0x00FF00
	Cyan   Color = 0x007FFF
	Blue   Color = 0x0000FF
	Purple Color = 0x8B00FF
)

// RGB packs 8-bit components into a Color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color. The color is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R())
	g = uint32(c.G())
	b = uint32(c.B())
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

// FromColor converts a standard color.Color to Color, dropping alpha.
func FromColor(c color.Color) Color {
	if fc, ok := c.(Color); ok {
		return fc & 0xFFFFFF
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Anything else yields Black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	default:
		return Black
	}
	return RGB(uint8(r), uint8(g), uint8(b))
}

func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// ColorModel converts any color to Color.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	return FromColor(c)
})

// putPixel stores c at p[0:4] in canvas byte order (B, G, R, X).
func putPixel(p []byte, c Color) {
	_ = p[3]
	p[0] = c.B()
	p[1] = c.G()
	p[2] = c.R()
	p[3] = 0
}

// getPixel loads a canvas pixel from p[0:4].
func getPixel(p []byte) Color {
	_ = p[3]
	return Color(p[2])<<16 | Color(p[1])<<8 | Color(p[0])
}
