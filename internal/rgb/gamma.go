package rgb

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGamma indicates a gamma exponent or bit depth that cannot build
// a table.
var ErrInvalidGamma = errors.New("rgb: invalid gamma parameters")

// DefaultGamma is the exponent used for WS2812-style LEDs.
const DefaultGamma = 2.2

// GammaTable maps linear brightness to corrected brightness. It is built
// once and never modified.
type GammaTable struct {
	exponent float64
	bits     int
	out      []uint16
}

// NewGammaTable precomputes out[i] = round(max·(i/max)^exponent + 0.4) for
// i in [0, max], where max = 2^bits − 1. The +0.4 bias is part of the
// curve. Halves round to even.
func NewGammaTable(exponent float64, bits int) (*GammaTable, error) {
	if !(exponent > 0) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("%w: exponent %v", ErrInvalidGamma, exponent)
	}
	if bits < 1 || bits > 16 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrInvalidGamma, bits)
	}

	maxVal := (1 << bits) - 1
	out := make([]uint16, maxVal+1)
	m := float64(maxVal)
	for i := range out {
		v := math.RoundToEven(m*math.Pow(float64(i)/m, exponent) + 0.4)
		out[i] = uint16(math.Min(v, m))
	}
	return &GammaTable{exponent: exponent, bits: bits, out: out}, nil
}

func (g *GammaTable) Exponent() float64 { return g.exponent }
func (g *GammaTable) Bits() int         { return g.bits }
func (g *GammaTable) Len() int          { return len(g.out) }

// Lookup returns the corrected value for i, clamping i into range.
func (g *GammaTable) Lookup(i int) uint16 {
	if i < 0 {
		i = 0
	}
	if i >= len(g.out) {
		i = len(g.out) - 1
	}
	return g.out[i]
}

// Apply corrects each channel of c. Tables deeper than 8 bits are sampled at
// the matching scaled index and scaled back to 8 bits.
func (g *GammaTable) Apply(c Color) Color {
	if g.bits == 8 {
		return Color{uint8(g.out[c.R]), uint8(g.out[c.G]), uint8(g.out[c.B])}
	}
	maxVal := len(g.out) - 1
	ch := func(v uint8) uint8 {
		idx := int(math.Round(float64(v) * float64(maxVal) / 255))
		return uint8(math.Round(float64(g.out[idx]) * 255 / float64(maxVal)))
	}
	return Color{ch(c.R), ch(c.G), ch(c.B)}
}
