package geometry

import (
	"fmt"
	"strings"

	"github.com/san-kum/neomatrix/internal/rgb"
)

// Format is the pixel layout of a Buffer.
type Format int

const (
	// MonoVLSB packs 8 vertical pixels per byte, least significant bit on top.
	MonoVLSB Format = iota
	// MonoHLSB packs 8 horizontal pixels per byte, most significant bit left.
	MonoHLSB
	// MonoHMSB packs 8 horizontal pixels per byte, least significant bit left.
	MonoHMSB
	// RGB565 stores one little-endian 16-bit color per pixel.
	RGB565
	// GS2HMSB packs four 2-bit gray pixels per byte.
	GS2HMSB
	// GS4HMSB packs two 4-bit gray pixels per byte, left pixel high.
	GS4HMSB
	// GS8 stores one 8-bit gray value per pixel.
	GS8
)

var formatNames = map[Format]string{
	MonoVLSB: "MONO_VLSB",
	MonoHLSB: "MONO_HLSB",
	MonoHMSB: "MONO_HMSB",
	RGB565:   "RGB565",
	GS2HMSB:  "GS2_HMSB",
	GS4HMSB:  "GS4_HMSB",
	GS8:      "GS8",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name, ignoring case. MONO_VLSB is also
// accepted as MVLSB, the alias used by some display drivers.
func ParseFormat(s string) (Format, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "MVLSB" {
		return MonoVLSB, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
}

// Formats lists every supported format in declaration order.
func Formats() []Format {
	return []Format{MonoVLSB, MonoHLSB, MonoHMSB, RGB565, GS2HMSB, GS4HMSB, GS8}
}

func (f Format) valid() bool {
	_, ok := formatNames[f]
	return ok
}

// BitsPerPixel is the color depth of one pixel.
func (f Format) BitsPerPixel() int {
	switch f {
	case RGB565:
		return 16
	case GS2HMSB:
		return 2
	case GS4HMSB:
		return 4
	case GS8:
		return 8
	default:
		return 1
	}
}

// MaxValue is the largest color value a pixel can hold.
func (f Format) MaxValue() uint16 {
	if f == RGB565 {
		return 0xffff
	}
	return uint16(1)<<f.BitsPerPixel() - 1
}

// alignStride rounds a stride up so that rows start on a byte boundary.
func (f Format) alignStride(stride int) int {
	switch f {
	case MonoHLSB, MonoHMSB:
		return (stride + 7) &^ 7
	case GS2HMSB:
		return (stride + 3) &^ 3
	case GS4HMSB:
		return (stride + 1) &^ 1
	}
	return stride
}

// BufferSize returns the bytes needed for a width×height frame in format f
// with the given stride (0 means width).
func BufferSize(width, height int, f Format, stride int) int {
	if stride <= 0 {
		stride = width
	}
	stride = f.alignStride(stride)
	if f == MonoVLSB {
		return (height + 7) / 8 * stride
	}
	return stride * height * f.BitsPerPixel() / 8
}

// Encode converts c to a pixel value in format f. Gray and mono formats use
// the color's luma.
func (f Format) Encode(c rgb.Color) uint16 {
	switch f {
	case RGB565:
		return rgb.To565(c)
	case GS8:
		return uint16(c.Luma())
	case GS4HMSB:
		return uint16(c.Luma() >> 4)
	case GS2HMSB:
		return uint16(c.Luma() >> 6)
	default:
		if c.Luma() >= 128 {
			return 1
		}
		return 0
	}
}

// Decode converts a pixel value in format f to 8-bit RGB.
func (f Format) Decode(v uint16) rgb.Color {
	var g uint8
	switch f {
	case RGB565:
		return rgb.From565(v)
	case GS8:
		g = uint8(v)
	case GS4HMSB:
		g = uint8(v&0x0f) * 17
	case GS2HMSB:
		g = uint8(v&0x03) * 85
	default:
		if v&1 != 0 {
			g = 255
		}
	}
	return rgb.Color{R: g, G: g, B: g}
}
