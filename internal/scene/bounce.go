package scene

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

// Bounce drops balls of random mass that slow down in a liquid filling the
// lower part of the matrix.
type Bounce struct {
	world
	Liquid  physics.Environment
	Gravity float64
}

func NewBounce(s Settings) (*Bounce, error) {
	b := &Bounce{
		world:   newWorld("bounce", s),
		Gravity: 0.05,
		Liquid: physics.Environment{
			X:      -1,
			Y:      float64(s.Rows) / 2,
			Width:  float64(s.Columns) + 1,
			Height: float64(s.Rows),
			Drag:   0.4,
		},
	}

	n := b.settings.bodies(4)
	for i := 0; i < n; i++ {
		m := physics.NewMover(vector.RandomPoint(b.rng, 0, s.Columns-1, 0, s.Rows/3))
		m.Mass = 0.5 + b.rng.Float64()*1.5
		m.G = b.Gravity
		m.Velocity = vector.Random2D(b.rng).Scale(0.3)
		if _, err := b.add(fmt.Sprintf("ball%d", i), m, wheelColor(i, n)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Bounce) Step() error {
	err := b.reg.Each(func(_ physics.BodyID, m *physics.Mover) error {
		m.G = b.Gravity
		if err := m.GravityForce(); err != nil {
			return err
		}
		return m.DragForce(&b.Liquid)
	})
	if err != nil {
		return err
	}
	return b.reg.Update()
}

// Draw marks the liquid surface.
func (b *Bounce) Draw(r *geometry.Rasterizer) {
	r.HLine(0, int(b.Liquid.Y), r.Width(), r.Encode(rgb.Color{B: 48}))
}

func (b *Bounce) GetParams() map[string]float64 {
	return map[string]float64{"gravity": b.Gravity, "drag": b.Liquid.Drag}
}

func (b *Bounce) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		b.Gravity = v
	case "drag":
		if v < 0 {
			return fmt.Errorf("%w: drag %v", physics.ErrParameterBounds, v)
		}
		b.Liquid.Drag = v
	default:
		return unknownParam(b.name, name)
	}
	return nil
}
