package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/neomatrix/internal/vector"
)

const (
	DefaultPendulumFriction = 0.995
)

// Pendulum swings a bob of arm length R about Origin. Angle is measured from
// the downward vertical.
type Pendulum struct {
	R                   float64
	Angle               float64
	AngularVelocity     float64
	AngularAcceleration float64
	Origin              vector.Vector
	Friction            float64
	G                   float64
}

func NewPendulum(origin vector.Vector, r, angle float64) *Pendulum {
	return &Pendulum{
		R:        r,
		Angle:    angle,
		Origin:   origin,
		Friction: DefaultPendulumFriction,
		G:        DefaultG,
	}
}

// Update advances one tick: α = −(G/r)·sin θ, ω += α, θ += ω, ω *= friction.
func (p *Pendulum) Update() {
	p.AngularAcceleration = (-p.G / p.R) * math.Sin(p.Angle)
	p.AngularVelocity += p.AngularAcceleration
	p.Angle += p.AngularVelocity
	p.AngularVelocity *= p.Friction
}

// Position returns the bob position: Origin + (r·sin θ, r·cos θ).
func (p *Pendulum) Position() (vector.Vector, error) {
	s, c := math.Sincos(p.Angle)
	off := vector.New(p.R*s, p.R*c)
	if p.Origin.Is3D() {
		off = vector.New3(off.X, off.Y, 0)
	}
	return p.Origin.Add(off)
}

// Energy is the mechanical energy per unit mass in tick units.
func (p *Pendulum) Energy() float64 {
	v := p.R * p.AngularVelocity
	return 0.5*v*v + p.G*p.R*(1-math.Cos(p.Angle))
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":   p.R,
		"friction": p.Friction,
		"g":        p.G,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if !(value > 0) {
			return fmt.Errorf("%w: length %v", ErrParameterBounds, value)
		}
		p.R = value
	case "friction":
		p.Friction = value
	case "g":
		p.G = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
