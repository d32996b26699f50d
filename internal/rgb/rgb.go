// Package rgb converts between the color spaces used by the LED pipeline:
// HSV, the 256-step color wheel, packed RGB565 and 8-bit RGB, plus the gamma
// lookup applied before colors reach the strip.
//
// All conversions are pure functions. A [GammaTable] is immutable once built
// and may be shared freely.
package rgb

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple as sent to the LEDs.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{255, 255, 255}
)

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// IsBlack reports whether every channel is off.
func (c Color) IsBlack() bool { return c == Black }

// Hex returns the #rrggbb form used by terminal styles.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Luma is the Rec. 601 brightness of c in [0, 255].
func (c Color) Luma() uint8 {
	y := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return uint8(math.Round(y))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Blend mixes a toward b by t in [0, 1], interpolating in RGB.
func Blend(a, b Color, t float64) Color {
	return fromColorful(a.colorful().BlendRgb(b.colorful(), t))
}

// ParseHex parses a #rrggbb string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("rgb: %w", err)
	}
	return fromColorful(c), nil
}

// Dim lowers the brightness of c by integer division. level runs from 0 (off)
// to 127 (unchanged); each channel is divided by 128-level.
func Dim(c Color, level int) Color {
	if level <= 0 {
		return Black
	}
	if level > 127 {
		level = 127
	}
	d := uint8(128 - level)
	return Color{c.R / d, c.G / d, c.B / d}
}
