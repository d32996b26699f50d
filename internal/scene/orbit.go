package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

// Orbit launches bodies on roughly circular paths around an attractor in
// the middle of the matrix.
type Orbit struct {
	world
	Attractor *physics.Attractor
}

func NewOrbit(s Settings) (*Orbit, error) {
	c := s.center()
	a := physics.NewAttractor(c, 2)
	a.MinDist = 1
	o := &Orbit{world: newWorld("orbit", s), Attractor: a}

	maxR := math.Max(1.5, math.Min(c.X, c.Y))
	n := o.settings.bodies(3)
	for i := 0; i < n; i++ {
		radius := 1 + o.rng.Float64()*(maxR-1)
		dir := vector.Random2D(o.rng)
		pos, err := c.Add(dir.Scale(radius))
		if err != nil {
			return nil, err
		}
		m := physics.NewMover(pos)
		m.Mass = 1
		m.TopSpeed = 1.5

		// speed for a circular orbit at this radius, perpendicular to dir
		f, err := a.Attraction(m)
		if err != nil {
			return nil, err
		}
		speed := math.Sqrt(f.Magnitude() / m.Mass * radius)
		m.Velocity = vector.New(-dir.Y, dir.X).Scale(speed)

		if _, err := o.add(fmt.Sprintf("planet%d", i), m, wheelColor(i, n)); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *Orbit) Step() error {
	err := o.reg.Each(func(id physics.BodyID, _ *physics.Mover) error {
		return o.reg.Attract(o.Attractor, id)
	})
	if err != nil {
		return err
	}
	return o.reg.Update()
}

// Draw marks the attractor.
func (o *Orbit) Draw(r *geometry.Rasterizer) {
	p := geometry.PointOf(o.Attractor.Position).Trunc()
	r.Circle(p.X, p.Y, 1, r.Encode(rgb.Color{R: 255, G: 200, B: 0}), false)
}

func (o *Orbit) GetParams() map[string]float64 { return o.Attractor.GetParams() }

func (o *Orbit) SetParam(name string, v float64) error {
	return o.Attractor.SetParam(name, v)
}
