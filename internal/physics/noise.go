package physics

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/neomatrix/internal/vector"
)

// NoiseField steers movers with a smoothly varying perlin flow field. The
// field drifts through time by Step on every Advance.
type NoiseField struct {
	Strength float64
	Scale    float64
	Step     float64

	noise *perlin.Perlin
	t     float64
}

// NewNoiseField returns a seeded field; the same seed always yields the same
// sequence of forces.
func NewNoiseField(seed int64, strength float64) *NoiseField {
	return &NoiseField{
		Strength: strength,
		Scale:    0.15,
		Step:     0.01,
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Force samples the field at p.
func (n *NoiseField) Force(p vector.Vector) vector.Vector {
	v := n.noise.Noise2D(p.X*n.Scale+n.t, p.Y*n.Scale+n.t)
	angle := v * 4 * math.Pi
	s, c := math.Sincos(angle)
	if p.Is3D() {
		return vector.New3(c*n.Strength, s*n.Strength, 0)
	}
	return vector.New(c*n.Strength, s*n.Strength)
}

// Apply pushes m along the field at its position.
func (n *NoiseField) Apply(m *Mover) error {
	return m.ApplyForce(n.Force(m.Position))
}

// Advance moves the field forward in time.
func (n *NoiseField) Advance() {
	n.t += n.Step
}
