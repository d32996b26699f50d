package geometry

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var textFace = basicfont.Face7x13

// inkImage lets a font.Drawer paint into a Buffer. Glyph pixels whose
// composited gray exceeds half intensity are set to ink.
type inkImage struct {
	buf *Buffer
	ink uint16
}

var _ draw.Image = inkImage{}

func (m inkImage) ColorModel() color.Model { return color.GrayModel }
func (m inkImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.buf.width, m.buf.height) }
func (m inkImage) At(x, y int) color.Color { return color.Black }

func (m inkImage) Set(x, y int, c color.Color) {
	if color.GrayModel.Convert(c).(color.Gray).Y >= 0x80 {
		m.buf.SetPixel(x, y, m.ink)
	}
}

// Text draws s with a 7×13 bitmap font. (x, y) is the top-left corner of
// the first glyph cell.
func (r *Rasterizer) Text(s string, x, y int, c uint16) {
	d := font.Drawer{
		Dst:  inkImage{buf: r.Buffer, ink: c},
		Src:  image.White,
		Face: textFace,
		Dot:  fixed.P(x, y+textFace.Ascent),
	}
	d.DrawString(s)
}

// TextWidth is the advance in pixels of s.
func TextWidth(s string) int {
	return font.MeasureString(textFace, s).Ceil()
}
