package gradmesh

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB color with 8-bit channels.
// The field engine never produces alpha other than fully opaque.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

// Fallbacks used when the field has no points.
var (
	// PreviewFallback is the dark neutral tone of an empty live preview.
	PreviewFallback = Color{0x1f, 0x1f, 0x1f}

	// ExportFallback fills an exported image that has no points.
	ExportFallback = White
)

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Contrast returns Black or White, whichever reads better over c.
func (c Color) Contrast() Color {
	if l, _, _ := c.colorful().Lab(); l > 0.6 {
		return Black
	}
	return White
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// fromColorful converts a go-colorful color, clamping out-of-gamut values.
func fromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#rrggbb" or "#rgb"; the leading '#' is optional.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("%w: color %q: want #rgb or #rrggbb", ErrInvalidArgument, s)
	}
	cc, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidArgument, s, err)
	}
	return fromColorful(cc), nil
}

// Hue returns the fully saturated, mid-lightness color for a hue in degrees.
// Hues outside [0,360) wrap around.
func Hue(degrees float64) Color {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		degrees = 0
	}
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	return fromColorful(colorful.Hsl(degrees, 1, 0.5))
}

// Palette is the set of colors assigned, in rotation, to newly placed points.
var Palette = []Color{
	{255, 100, 150},
	{100, 200, 255},
	{150, 255, 100},
	{255, 200, 100},
	{200, 100, 255},
	{100, 255, 200},
}

// PaletteColor returns the palette entry for the n-th placed point.
func PaletteColor(n int) Color {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}
