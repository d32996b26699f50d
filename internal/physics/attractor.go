package physics

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/vector"
)

const (
	DefaultMinDist = 5.0
	DefaultMaxDist = 25.0
)

// Attractor pulls movers with an inverse-square force. The distance used in
// the force law is clamped to [MinDist, MaxDist] so the force stays finite
// when a mover passes through the attractor.
type Attractor struct {
	Mass     float64
	Position vector.Vector
	G        float64
	MinDist  float64
	MaxDist  float64
}

func NewAttractor(position vector.Vector, mass float64) *Attractor {
	return &Attractor{
		Mass:     mass,
		Position: position,
		G:        DefaultG,
		MinDist:  DefaultMinDist,
		MaxDist:  DefaultMaxDist,
	}
}

// Attraction returns the force pulling m toward the attractor:
// G·M·m / d² along the line between them.
func (a *Attractor) Attraction(m *Mover) (vector.Vector, error) {
	dir, err := a.Position.Sub(m.Position)
	if err != nil {
		return vector.Vector{}, fmt.Errorf("attraction: %w", err)
	}
	d := clamp(dir.Magnitude(), a.MinDist, a.MaxDist)
	strength := (a.G * a.Mass * m.Mass) / (d * d)
	return dir.Normalize().Scale(strength), nil
}

// Repulsion is the negated attraction.
func (a *Attractor) Repulsion(m *Mover) (vector.Vector, error) {
	f, err := a.Attraction(m)
	if err != nil {
		return vector.Vector{}, err
	}
	return f.Neg(), nil
}

// Attract applies the attraction to m.
func (a *Attractor) Attract(m *Mover) error {
	f, err := a.Attraction(m)
	if err != nil {
		return err
	}
	return m.ApplyForce(f)
}

// Repel applies the repulsion to m.
func (a *Attractor) Repel(m *Mover) error {
	f, err := a.Repulsion(m)
	if err != nil {
		return err
	}
	return m.ApplyForce(f)
}

func (a *Attractor) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    a.Mass,
		"g":       a.G,
		"mindist": a.MinDist,
		"maxdist": a.MaxDist,
	}
}

func (a *Attractor) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		a.Mass = value
	case "g":
		a.G = value
	case "mindist":
		if value <= 0 || value > a.MaxDist {
			return fmt.Errorf("%w: mindist %v outside (0, %v]", ErrParameterBounds, value, a.MaxDist)
		}
		a.MinDist = value
	case "maxdist":
		if value < a.MinDist {
			return fmt.Errorf("%w: maxdist %v < mindist %v", ErrParameterBounds, value, a.MinDist)
		}
		a.MaxDist = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
