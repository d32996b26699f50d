package viz

import (
	"strings"

	"github.com/san-kum/neomatrix/internal/geometry"
)

// dot bit for each position of a 2×4 braille cell, indexed [row][col].
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome bitmap printed as braille, one character per 2×4
// dots. Drawing goes through the embedded rasterizer.
type Canvas struct {
	*geometry.Rasterizer
	cols, rows int
}

// NewCanvas returns a canvas of cols×rows characters.
func NewCanvas(cols, rows int) (*Canvas, error) {
	r, err := geometry.NewRasterizer(cols*2, rows*4, "MONO_HLSB")
	if err != nil {
		return nil, err
	}
	return &Canvas{Rasterizer: r, cols: cols, rows: rows}, nil
}

func (c *Canvas) Clear() { c.Fill(0) }

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			ch := rune(0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c.Pixel(col*2+dx, row*4+dy) != 0 {
						ch |= brailleDots[dy][dx]
					}
				}
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// trailScale is the number of dots per LED in each direction.
const trailScale = 4

// Trails keeps the recent path of every body.
type Trails struct {
	limit int
	paths map[string][]geometry.Point
	order []string
}

func NewTrails(limit int) *Trails {
	return &Trails{limit: limit, paths: make(map[string][]geometry.Point)}
}

func (t *Trails) Add(name string, p geometry.Point) {
	path, ok := t.paths[name]
	if !ok {
		t.order = append(t.order, name)
	}
	path = append(path, p)
	if len(path) > t.limit {
		path = path[1:]
	}
	t.paths[name] = path
}

func (t *Trails) Reset() {
	clear(t.paths)
	t.order = t.order[:0]
}

func (t *Trails) Len(name string) int { return len(t.paths[name]) }

// Draw plots every path onto c, trailScale dots per LED.
func (t *Trails) Draw(c *Canvas) {
	c.Clear()
	for _, name := range t.order {
		path := t.paths[name]
		scaled := make([]geometry.Point, len(path))
		for i, p := range path {
			scaled[i] = geometry.Pt(p.X*trailScale+trailScale/2, p.Y*trailScale+trailScale/2)
		}
		if len(scaled) == 1 {
			q := scaled[0].Trunc()
			c.SetPixel(q.X, q.Y, 1)
			continue
		}
		c.Curve(scaled, 1)
	}
}
