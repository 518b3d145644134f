package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/crazy3lf/colorconv"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an accent color as the user supplied it plus the RGB triple
// used for drawing.
type Color struct {
	Hex     string
	R, G, B uint8
}

// ParseHex never fails. It strips one leading '#' and reads the longest
// hexadecimal prefix of the rest, the way a browser's parseInt(s, 16)
// does, keeping the low 24 bits. Input with no hex digits becomes black.
func ParseHex(s string) Color {
	v := parseIntPrefix(strings.TrimPrefix(s, "#"))
	return Color{
		Hex: s,
		R:   uint8(v >> 16),
		G:   uint8(v >> 8),
		B:   uint8(v),
	}
}

func parseIntPrefix(s string) uint32 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			break
		}
		v = v<<4 | uint32(d)
	}
	if neg {
		v = -v
	}
	return v
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FromColor converts any color.Color, e.g. one returned by a native color
// dialog, to a "#rrggbb" Color.
func FromColor(c color.Color) Color {
	cf, _ := colorful.MakeColor(c)
	return ParseHex(cf.Clamped().Hex())
}

// RGB is the "r, g, b" form used when composing alpha-blended strokes.
func (c Color) RGB() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// WithAlpha returns the color at the given opacity, clamped to [0,1].
func (c Color) WithAlpha(a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// NRGBA is the opaque color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Blend mixes c toward other by t in RGB space. t=0 is c, t=1 is other.
func (c Color) Blend(other Color, t float64) Color {
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendRgb(b, t).Clamped().RGB255()
	return Color{Hex: fmt.Sprintf("#%02x%02x%02x", r, g, bl), R: r, G: g, B: bl}
}

// Brighten scales the HSV value by f, the way a CSS brightness() filter
// brightens a flat color.
func (c Color) Brighten(f float64) Color {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, v := cf.Hsv()
	r, g, b, err := colorconv.HSVToRGB(h, s, math.Min(1, v*f))
	if err != nil {
		return c
	}
	return Color{Hex: fmt.Sprintf("#%02x%02x%02x", r, g, b), R: r, G: g, B: b}
}

// White is the highlight color for hovered letters.
var White = Color{Hex: "#fff", R: 0xff, G: 0xff, B: 0xff}

// Random returns a color the way the page's "surprise me" clicks do: a
// uniformly random 24-bit value written in lowercase hex without padding,
// so small values produce short, leniently parsed strings.
func Random(rng *rand.Rand) Color {
	return ParseHex(fmt.Sprintf("#%x", rng.IntN(0xffffff)))
}
