package physics

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/vector"
)

const (
	DefaultSpringDamping   = 0.98
	DefaultSpringStiffness = 0.2
)

// Spring is a damped Hooke spring from a fixed anchor to one Mover. The
// spring keeps a non-owning reference to the last mover passed to Connect;
// the mover's integration stays with its owner.
type Spring struct {
	Anchor  vector.Vector
	Length  float64
	Damping float64
	K       float64

	mover *Mover
}

func NewSpring(anchor vector.Vector, length float64) *Spring {
	return &Spring{
		Anchor:  anchor,
		Length:  length,
		Damping: DefaultSpringDamping,
		K:       DefaultSpringStiffness,
	}
}

// Connect attaches m and applies the restoring force −k·stretch along the
// spring axis. The spring's damping replaces the mover's damping, so the
// last spring connected wins.
func (s *Spring) Connect(m *Mover) error {
	dir, err := m.Position.Sub(s.Anchor)
	if err != nil {
		return fmt.Errorf("spring direction: %w", err)
	}
	s.mover = m
	stretch := dir.Magnitude() - s.Length
	force := dir.Normalize().Scale(-s.K * stretch)
	m.Damping = s.Damping
	return m.ApplyForce(force)
}

// Mover returns the connected mover, or nil.
func (s *Spring) Mover() *Mover { return s.mover }

// Direction is the vector from the anchor to the connected mover.
func (s *Spring) Direction() (vector.Vector, error) {
	if s.mover == nil {
		return vector.Vector{}, ErrNotConnected
	}
	d, err := s.mover.Position.Sub(s.Anchor)
	if err != nil {
		return vector.Vector{}, fmt.Errorf("spring direction: %w", err)
	}
	return d, nil
}

// ConstrainLength clamps the connected mover to lie between minLen and
// maxLen from the anchor. A clamped mover loses all velocity. This is a
// positional constraint and applies no force.
func (s *Spring) ConstrainLength(minLen, maxLen float64) error {
	if minLen > maxLen {
		return fmt.Errorf("%w: min length %v > max length %v", ErrParameterBounds, minLen, maxLen)
	}
	dir, err := s.Direction()
	if err != nil {
		return err
	}
	dist := dir.Magnitude()
	var target float64
	switch {
	case dist < minLen:
		target = minLen
	case dist > maxLen:
		target = maxLen
	default:
		return nil
	}
	p, err := s.Anchor.Add(dir.Normalize().Scale(target))
	if err != nil {
		return err
	}
	s.mover.Position = p
	s.mover.Velocity = vector.Zero(p.Dim())
	return nil
}

// Energy returns the elastic potential ½·k·stretch² of the connected mover.
func (s *Spring) Energy() float64 {
	dir, err := s.Direction()
	if err != nil {
		return 0
	}
	stretch := dir.Magnitude() - s.Length
	return 0.5 * s.K * stretch * stretch
}

func (s *Spring) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  s.Length,
		"damping": s.Damping,
		"k":       s.K,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "length":
		s.Length = value
	case "damping":
		s.Damping = value
	case "k":
		s.K = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
