package scene

import (
	"math"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
)

// Shapes exercises the rasterizer: a square spun by an angular mover, an
// ellipse, and a Bézier curve whose middle control point rides an
// oscillator.
type Shapes struct {
	world
	Wave  physics.Oscillator
	Steps int

	spinner physics.BodyID
}

func NewShapes(s Settings) (*Shapes, error) {
	sh := &Shapes{
		world: newWorld("shapes", s),
		Wave:  physics.Oscillator{Velocity: 0.08, Amplitude: float64(s.Rows) / 2},
		Steps: 2 * s.Columns,
	}
	m := physics.NewMover(s.center())
	m.Motion = physics.Angular
	m.AngularVelocity = 0.05
	id, err := sh.add("spinner", m, rgb.White)
	if err != nil {
		return nil, err
	}
	sh.spinner = id
	return sh, nil
}

func (sh *Shapes) Step() error {
	sh.Wave.Oscillate()
	return sh.reg.Update()
}

func (sh *Shapes) Draw(r *geometry.Rasterizer) {
	m, err := sh.reg.Mover(sh.spinner)
	if err != nil {
		return
	}
	c := geometry.PointOf(m.Position)
	cols, rows := float64(sh.settings.Columns), float64(sh.settings.Rows)

	side := math.Min(cols, rows) - 2
	square := geometry.RotatePolygon(geometry.RectanglePoints(c.X, c.Y, side, side), m.Angle, c)
	r.Polygon(square, r.Encode(rgb.Color{R: 255, G: 40, B: 40}), false)

	ci := c.Trunc()
	r.Ellipse(ci.X, ci.Y, int(cols/4), int(rows/2)-1, r.Encode(rgb.Color{G: 90, B: 255}), false)

	ctrl := []geometry.Point{
		{X: 0, Y: rows - 1},
		{X: c.X, Y: c.Y + sh.Wave.Offset()},
		{X: cols - 1, Y: rows - 1},
	}
	if curve, err := geometry.BezierCurve(ctrl, sh.Steps); err == nil {
		r.Curve(curve, r.Encode(rgb.Color{R: 40, G: 255, B: 80}))
	}

	if r.Height() >= 13 {
		r.Text("neo", 1, 0, r.Encode(rgb.White))
	}
}

func (sh *Shapes) GetParams() map[string]float64 {
	m, _ := sh.reg.Mover(sh.spinner)
	return map[string]float64{
		"spin":      m.AngularVelocity,
		"wave":      sh.Wave.Velocity,
		"amplitude": sh.Wave.Amplitude,
	}
}

func (sh *Shapes) SetParam(name string, v float64) error {
	switch name {
	case "spin":
		m, err := sh.reg.Mover(sh.spinner)
		if err != nil {
			return err
		}
		m.AngularVelocity = v
	case "wave":
		sh.Wave.Velocity = v
	case "amplitude":
		sh.Wave.Amplitude = v
	default:
		return unknownParam(sh.name, name)
	}
	return nil
}
