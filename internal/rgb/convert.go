package rgb

import (
	"fmt"
	"math"
	"strings"
)

// round8 quantizes a channel in [0, 1] to 8 bits. Halves round to even.
func round8(v float64) uint8 {
	return uint8(math.RoundToEven(clampUnit(v) * 255))
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// FromHSV converts hue h in degrees, saturation s and value v in [0, 1] to
// RGB using the chroma decomposition over six 60° sectors. Hues outside
// [0, 360) wrap around.
func FromHSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clampUnit(s), clampUnit(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{round8(r + m), round8(g + m), round8(b + m)}
}

// HSV is a hue in degrees with saturation and value as percentages, all
// rounded to integers.
type HSV struct {
	H, S, V int
}

// HSV converts c back to hue/saturation/value.
func (c Color) HSV() HSV {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	delta := hi - lo

	var h float64
	switch {
	case delta == 0:
		h = 0
	case hi == r:
		h = 60 * math.Mod((g-b)/delta, 6)
		if h < 0 {
			h += 360
		}
	case hi == g:
		h = 60 * (2 + (b-r)/delta)
	default:
		h = 60 * (4 + (r-g)/delta)
	}

	var s float64
	if hi > 0 {
		s = delta / hi * 100
	}
	return HSV{
		H: int(math.RoundToEven(h)),
		S: int(math.RoundToEven(s)),
		V: int(math.RoundToEven(hi * 100)),
	}
}

// Wheel maps a position on a 256-step color wheel to RGB by linear
// interpolation over three segments: 0–85 green→red, 86–170 red→blue,
// 171–255 blue→green.
func Wheel(pos uint8) Color {
	p := int(pos)
	switch {
	case p <= 85:
		return Color{uint8(p * 3), uint8(255 - p*3), 0}
	case p <= 170:
		p -= 85
		return Color{uint8(255 - p*3), 0, uint8(p * 3)}
	default:
		p -= 170
		return Color{0, uint8(p * 3), uint8(255 - p*3)}
	}
}

// To565 packs c into 5/6/5 bits, dropping the low bits of each channel.
func To565(c Color) uint16 {
	r := uint16(c.R>>3) & 0x1f
	g := uint16(c.G>>2) & 0x3f
	b := uint16(c.B>>3) & 0x1f
	return r<<11 | g<<5 | b
}

// From565 unpacks an RGB565 value, replicating the high bits into the low
// bits. To565 followed by From565 is lossy.
func From565(v uint16) Color {
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return Color{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

// Space names the encoding of an incoming color value.
type Space int

const (
	SpaceRGB Space = iota
	SpaceHSV
	SpaceWheel
	SpaceRGB565
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "RGB"
	case SpaceHSV:
		return "HSV"
	case SpaceWheel:
		return "C_W"
	case SpaceRGB565:
		return "RGB565"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// ParseSpace accepts RGB, HSV, C_W (or WHEEL) and RGB565.
func ParseSpace(s string) (Space, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGB":
		return SpaceRGB, nil
	case "HSV":
		return SpaceHSV, nil
	case "C_W", "WHEEL":
		return SpaceWheel, nil
	case "RGB565":
		return SpaceRGB565, nil
	}
	return 0, fmt.Errorf("rgb: unknown color space %q", s)
}

// Convert turns a raw color value into RGB. The meaning of vals depends on
// space: RGB takes three channels, HSV takes hue, saturation and value,
// C_W takes a wheel position and RGB565 a packed value.
func Convert(space Space, vals ...float64) (Color, error) {
	need := map[Space]int{SpaceRGB: 3, SpaceHSV: 3, SpaceWheel: 1, SpaceRGB565: 1}[space]
	if need == 0 {
		return Black, fmt.Errorf("rgb: unknown color space %v", space)
	}
	if len(vals) != need {
		return Black, fmt.Errorf("rgb: %v expects %d values, got %d", space, need, len(vals))
	}
	switch space {
	case SpaceHSV:
		return FromHSV(vals[0], vals[1], vals[2]), nil
	case SpaceWheel:
		return Wheel(uint8(math.Min(math.Max(vals[0], 0), 255))), nil
	case SpaceRGB565:
		return From565(uint16(math.Min(math.Max(vals[0], 0), 0xffff))), nil
	default:
		return Color{channel(vals[0]), channel(vals[1]), channel(vals[2])}, nil
	}
}

func channel(v float64) uint8 {
	return uint8(math.Min(math.Max(math.Round(v), 0), 255))
}
