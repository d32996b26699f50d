// Package display ties moving bodies to an LED matrix: it keeps them inside
// the visible area and turns frame buffers into LED writes.
package display

import (
	"fmt"
	"image"
	"math"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

// Bounds is the area a body may occupy. Coordinates run from (X0, Y0) to
// (X0+Width, Y0+Height) inclusive, so a 32×8 matrix has Width 31 and
// Height 7.
type Bounds struct {
	X0, Y0        float64
	Width, Height float64
}

// MatrixBounds covers every cell of a columns×rows matrix.
func MatrixBounds(columns, rows int) Bounds {
	return Bounds{Width: float64(columns - 1), Height: float64(rows - 1)}
}

func (b Bounds) MaxX() float64 { return b.X0 + b.Width }
func (b Bounds) MaxY() float64 { return b.Y0 + b.Height }

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p vector.Vector) bool {
	return p.X >= b.X0 && p.X <= b.MaxX() && p.Y >= b.Y0 && p.Y <= b.MaxY()
}

// CheckEdges keeps pos inside b. With reflect set, a coordinate past an edge
// is clamped to it and that velocity component is inverted; the result is
// always false. Without reflect nothing is modified and the result reports
// whether pos is outside.
func (b Bounds) CheckEdges(pos, vel *vector.Vector, reflect bool) (outOfMatrix bool) {
	if !reflect {
		return !b.Contains(*pos)
	}
	switch {
	case pos.X > b.MaxX():
		pos.X = b.MaxX()
		vel.X = -vel.X
	case pos.X < b.X0:
		pos.X = b.X0
		vel.X = -vel.X
	}
	switch {
	case pos.Y > b.MaxY():
		pos.Y = b.MaxY()
		vel.Y = -vel.Y
	case pos.Y < b.Y0:
		pos.Y = b.Y0
		vel.Y = -vel.Y
	}
	return false
}

// Display draws tracked bodies and frame buffers onto a Strip.
type Display struct {
	Bounds  Bounds
	Reflect bool

	strip    *neopix.Strip
	position *vector.Vector
	velocity *vector.Vector
	color    rgb.Color
	out      bool
}

// New returns a display covering the strip's whole matrix.
func New(strip *neopix.Strip) (*Display, error) {
	topo := strip.Topology()
	if topo == nil {
		return nil, fmt.Errorf("%w: display needs a matrix topology", neopix.ErrConfiguration)
	}
	return &Display{
		Bounds:  MatrixBounds(topo.Columns(), topo.Rows()),
		Reflect: true,
		strip:   strip,
	}, nil
}

func (d *Display) Strip() *neopix.Strip { return d.strip }

// SetArea replaces the bounds used by edge checks.
func (d *Display) SetArea(width, height, x0, y0 float64) {
	d.Bounds = Bounds{X0: x0, Y0: y0, Width: width, Height: height}
}

// UpdatePosition starts tracking pos and vel, which stay owned by the
// caller, and applies the edge policy to them.
func (d *Display) UpdatePosition(pos, vel *vector.Vector, c rgb.Color) {
	d.position, d.velocity, d.color = pos, vel, c
	d.out = d.Bounds.CheckEdges(pos, vel, d.Reflect)
}

// Track is UpdatePosition for a mover.
func (d *Display) Track(m *physics.Mover, c rgb.Color) {
	d.UpdatePosition(&m.Position, &m.Velocity, c)
}

// OutOfMatrix reports whether the tracked position was outside the bounds
// at the last update. It is always false when reflecting.
func (d *Display) OutOfMatrix() bool { return d.out }

// UpdateLED lights the cell under the tracked position. The position is
// rounded to the nearest cell, halves to even.
func (d *Display) UpdateLED() {
	if d.position == nil || d.out {
		return
	}
	x := int(math.RoundToEven(d.position.X))
	y := int(math.RoundToEven(d.position.Y))
	d.strip.SetMatrixPixel(x, y, d.color)
}

// ShowFrame copies every matrix cell from buf to the LEDs and flushes.
// Cells outside buf read as black.
func (d *Display) ShowFrame(buf *geometry.Buffer) error {
	topo := d.strip.Topology()
	for y := 0; y < topo.Rows(); y++ {
		for x := 0; x < topo.Columns(); x++ {
			d.strip.SetMatrixPixel(x, y, buf.Color(x, y))
		}
	}
	return d.strip.Show()
}

func (d *Display) Show() error { return d.strip.Show() }
func (d *Display) Clear()      { d.strip.ClearAll() }

// RoundCoordinates rounds points to the nearest integer, halves to even.
// Unlike geometry.RoundCoordinates it does not truncate.
func RoundCoordinates(points []geometry.Point) []image.Point {
	out := make([]image.Point, len(points))
	for i, p := range points {
		out[i] = image.Pt(int(math.RoundToEven(p.X)), int(math.RoundToEven(p.Y)))
	}
	return out
}

// Rotate90 returns m rotated a quarter turn clockwise: an n×k input
// becomes k×n with out[j][n-1-i] = m[i][j].
func Rotate90[T any](m [][]T) [][]T {
	n := len(m)
	if n == 0 {
		return nil
	}
	k := len(m[0])
	out := make([][]T, k)
	for j := range out {
		out[j] = make([]T, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k && j < len(m[i]); j++ {
			out[j][n-1-i] = m[i][j]
		}
	}
	return out
}
