package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/neomatrix/internal/vector"
)

// DefaultG is the gravitational constant used by movers and attractors.
const DefaultG = 0.4

// Motion selects whether Update also integrates the angular state.
type Motion int

const (
	Linear Motion = iota
	Angular
)

// Configurable is implemented by bodies whose scalar parameters can be
// changed at runtime.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Mover is a point mass integrated with semi-implicit Euler. Forces are
// transient: the acceleration is cleared at the end of every Update.
type Mover struct {
	Position     vector.Vector
	Velocity     vector.Vector
	Acceleration vector.Vector
	Gravity      vector.Vector

	G    float64
	Mass float64

	Angle               float64
	AngularVelocity     float64
	AngularAcceleration float64

	// Friction is the kinetic friction coefficient applied on every Update.
	// Zero disables it.
	Friction float64
	// Drag is used by DragForce when the environment has no coefficient.
	Drag float64
	// Damping scales the velocity on every Update. Zero disables it.
	Damping float64
	// TopSpeed caps the velocity magnitude. Zero disables it.
	TopSpeed float64

	Motion Motion
}

// NewMover returns a resting mover of unit mass at position. Velocity,
// acceleration and gravity take the dimension of position.
func NewMover(position vector.Vector) *Mover {
	zero := vector.Zero(position.Dim())
	return &Mover{
		Position:     position,
		Velocity:     zero,
		Acceleration: zero,
		Gravity:      zero,
		G:            DefaultG,
		Mass:         1,
	}
}

// Validate checks that every state vector shares the position's dimension
// and that the scalar parameters are usable.
func (m *Mover) Validate() error {
	for _, v := range []vector.Vector{m.Velocity, m.Acceleration, m.Gravity} {
		if !m.Position.SameDim(v) {
			return &vector.DimensionError{Op: "mover", Left: m.Position.Dim(), Right: v.Dim()}
		}
	}
	if !(m.Mass > 0) || math.IsInf(m.Mass, 0) {
		return fmt.Errorf("%w: mass %v", ErrParameterBounds, m.Mass)
	}
	if m.Damping < 0 {
		return fmt.Errorf("%w: damping %v", ErrParameterBounds, m.Damping)
	}
	if m.TopSpeed < 0 {
		return fmt.Errorf("%w: top speed %v", ErrParameterBounds, m.TopSpeed)
	}
	return nil
}

// ApplyForce adds f/mass to the acceleration. Forces applied within one tick
// superpose.
func (m *Mover) ApplyForce(f vector.Vector) error {
	a, err := m.Acceleration.Add(f.Div(m.Mass))
	if err != nil {
		return fmt.Errorf("apply force: %w", err)
	}
	m.Acceleration = a
	return nil
}

// Update integrates one tick. On error position and velocity are left
// unchanged.
func (m *Mover) Update() error {
	if m.Friction != 0 {
		if err := m.FrictionForce(m.Friction); err != nil {
			return err
		}
	}

	v, err := m.Velocity.Add(m.Acceleration)
	if err != nil {
		return fmt.Errorf("update velocity: %w", err)
	}
	if m.Damping != 0 {
		v = v.Scale(m.Damping)
	}
	if m.TopSpeed != 0 {
		v.Limit(m.TopSpeed)
	}
	p, err := m.Position.Add(v)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}

	m.Velocity = v
	m.Position = p
	if m.Motion == Angular {
		m.AngularVelocity += m.AngularAcceleration
		m.Angle += m.AngularVelocity
	}
	m.ClearAcceleration()
	return nil
}

func (m *Mover) ClearAcceleration() {
	m.Acceleration = vector.Zero(m.Position.Dim())
}

// FrictionForce applies a force of magnitude cf opposing the velocity.
func (m *Mover) FrictionForce(cf float64) error {
	if cf == 0 {
		return nil
	}
	f := m.Velocity.Neg().Normalize().Scale(cf)
	return m.ApplyForce(f)
}

// DragForce applies quadratic drag ce·speed² against the velocity while the
// mover is strictly inside env.
func (m *Mover) DragForce(env *Environment) error {
	if !m.Inside(env) {
		return nil
	}
	ce := env.Drag
	if ce == 0 {
		ce = m.Drag
	}
	speed := m.Velocity.Magnitude()
	f := m.Velocity.Neg().Normalize().Scale(ce * speed * speed)
	return m.ApplyForce(f)
}

// GravityForce applies the weight G·mass along +y, which points down the
// matrix.
func (m *Mover) GravityForce() error {
	w := m.G * m.Mass
	if m.Position.Is3D() {
		m.Gravity = vector.New3(0, w, 0)
	} else {
		m.Gravity = vector.New(0, w)
	}
	return m.ApplyForce(m.Gravity)
}

// Inside reports whether the mover lies strictly within env.
func (m *Mover) Inside(env *Environment) bool {
	return env.Contains(m.Position)
}

// Heading is the direction of travel in the xy plane.
func (m *Mover) Heading() float64 {
	return m.Velocity.AngleXY()
}

func (m *Mover) Speed() float64 {
	return m.Velocity.Magnitude()
}

// KineticEnergy returns ½·m·|v|².
func (m *Mover) KineticEnergy() float64 {
	s := m.Velocity.Magnitude()
	return 0.5 * m.Mass * s * s
}

func (m *Mover) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":     m.Mass,
		"g":        m.G,
		"damping":  m.Damping,
		"friction": m.Friction,
		"topspeed": m.TopSpeed,
	}
}

func (m *Mover) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if !(value > 0) {
			return fmt.Errorf("%w: mass %v", ErrParameterBounds, value)
		}
		m.Mass = value
	case "g":
		m.G = value
	case "damping":
		m.Damping = value
	case "friction":
		m.Friction = value
	case "topspeed":
		m.TopSpeed = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}
