package vector

import (
	"math"
	"math/rand"
)

// Polar is a vector in polar (2D) or spherical (3D) form. Theta is the polar
// angle: measured from +x in 2D and from +z in 3D. Phi is the azimuth in the
// xy plane and only meaningful in 3D.
type Polar struct {
	R     float64
	Theta float64
	Phi   float64
	Three bool
}

// ToPolar converts v to polar or spherical coordinates.
func (v Vector) ToPolar() Polar {
	r := v.Magnitude()
	if !v.three {
		return Polar{R: r, Theta: math.Atan2(v.Y, v.X)}
	}
	theta := 0.0
	if r > 0 {
		theta = math.Acos(v.Z / r)
	}
	return Polar{R: r, Theta: theta, Phi: math.Atan2(v.Y, v.X), Three: true}
}

// FromPolar is the inverse of ToPolar.
func FromPolar(p Polar) Vector {
	if !p.Three {
		s, c := math.Sincos(p.Theta)
		return New(p.R*c, p.R*s)
	}
	st, ct := math.Sincos(p.Theta)
	sp, cp := math.Sincos(p.Phi)
	return New3(p.R*st*cp, p.R*st*sp, p.R*ct)
}

// Random2D returns a random unit vector.
func Random2D(rng *rand.Rand) Vector {
	angle := rng.Float64() * 2 * math.Pi
	s, c := math.Sincos(angle)
	return New(c, s)
}

// RandomPoint returns a 2D point with integer coordinates drawn uniformly
// from [minX, maxX] x [minY, maxY].
func RandomPoint(rng *rand.Rand, minX, maxX, minY, maxY int) Vector {
	x := minX + rng.Intn(maxX-minX+1)
	y := minY + rng.Intn(maxY-minY+1)
	return New(float64(x), float64(y))
}
