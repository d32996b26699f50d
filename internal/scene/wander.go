package scene

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/vector"
)

// Wander lets bodies drift through a perlin flow field.
type Wander struct {
	world
	Field    *physics.NoiseField
	TopSpeed float64
}

func NewWander(s Settings) (*Wander, error) {
	w := &Wander{
		world:    newWorld("wander", s),
		Field:    physics.NewNoiseField(s.Seed, 0.05),
		TopSpeed: 0.4,
	}
	n := w.settings.bodies(5)
	for i := 0; i < n; i++ {
		m := physics.NewMover(vector.RandomPoint(w.rng, 0, s.Columns-1, 0, s.Rows-1))
		m.TopSpeed = w.TopSpeed
		if _, err := w.add(fmt.Sprintf("firefly%d", i), m, wheelColor(i, n)); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Wander) Step() error {
	err := w.reg.Each(func(_ physics.BodyID, m *physics.Mover) error {
		m.TopSpeed = w.TopSpeed
		return w.Field.Apply(m)
	})
	if err != nil {
		return err
	}
	w.Field.Advance()
	return w.reg.Update()
}

func (w *Wander) Draw(*geometry.Rasterizer) {}

func (w *Wander) GetParams() map[string]float64 {
	return map[string]float64{
		"strength": w.Field.Strength,
		"scale":    w.Field.Scale,
		"topspeed": w.TopSpeed,
	}
}

func (w *Wander) SetParam(name string, v float64) error {
	switch name {
	case "strength":
		w.Field.Strength = v
	case "scale":
		w.Field.Scale = v
	case "topspeed":
		if v <= 0 {
			return fmt.Errorf("%w: topspeed %v", physics.ErrParameterBounds, v)
		}
		w.TopSpeed = v
	default:
		return unknownParam(w.name, name)
	}
	return nil
}
