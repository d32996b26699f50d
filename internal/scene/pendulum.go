package scene

import (
	"math"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

// PendulumScene swings a bob from the middle of the top edge. The bob is a
// Mover so it can be tracked and measured like any other body; its position
// and velocity are taken from the pendulum every tick.
type PendulumScene struct {
	world
	Pendulum *physics.Pendulum

	bob physics.BodyID
}

func NewPendulumScene(s Settings) (*PendulumScene, error) {
	c := s.center()
	p := physics.NewPendulum(vector.New(c.X, 0), float64(s.Rows-2), math.Pi/3)
	p.G = 0.2

	ps := &PendulumScene{world: newWorld("pendulum", s), Pendulum: p}
	pos, err := p.Position()
	if err != nil {
		return nil, err
	}
	id, err := ps.add("bob", physics.NewMover(pos), rgb.Color{G: 200, B: 255})
	if err != nil {
		return nil, err
	}
	ps.bob = id
	return ps, nil
}

func (ps *PendulumScene) Step() error {
	m, err := ps.reg.Mover(ps.bob)
	if err != nil {
		return err
	}
	ps.Pendulum.Update()
	pos, err := ps.Pendulum.Position()
	if err != nil {
		return err
	}
	vel, err := pos.Sub(m.Position)
	if err != nil {
		return err
	}
	m.Position, m.Velocity = pos, vel
	return nil
}

func (ps *PendulumScene) Draw(r *geometry.Rasterizer) {
	m, err := ps.reg.Mover(ps.bob)
	if err != nil {
		return
	}
	o := geometry.PointOf(ps.Pendulum.Origin).Trunc()
	p := geometry.PointOf(m.Position).Trunc()
	r.Line(o.X, o.Y, p.X, p.Y, r.Encode(rgb.Color{R: 60, G: 60, B: 60}))
}

func (ps *PendulumScene) GetParams() map[string]float64 { return ps.Pendulum.GetParams() }

func (ps *PendulumScene) SetParam(name string, v float64) error {
	return ps.Pendulum.SetParam(name, v)
}
