package vector

import (
	"fmt"
	"math"
)

// Vector is a 2D or 3D vector. The zero value is the 2D zero vector.
type Vector struct {
	X, Y, Z float64
	three   bool
}

// New returns a 2D vector.
func New(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// New3 returns a 3D vector.
func New3(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z, three: true}
}

// Zero returns the zero vector of the given dimension. Any dim other than 3
// yields a 2D vector.
func Zero(dim int) Vector {
	if dim == 3 {
		return New3(0, 0, 0)
	}
	return New(0, 0)
}

// Dim reports 2 or 3.
func (v Vector) Dim() int {
	if v.three {
		return 3
	}
	return 2
}

func (v Vector) Is3D() bool { return v.three }

// SameDim reports whether v and o can be combined.
func (v Vector) SameDim(o Vector) bool { return v.three == o.three }

func (v Vector) Add(o Vector) (Vector, error) {
	if !v.SameDim(o) {
		return Vector{}, mismatch("add", v, o)
	}
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z, three: v.three}, nil
}

func (v Vector) Sub(o Vector) (Vector, error) {
	if !v.SameDim(o) {
		return Vector{}, mismatch("sub", v, o)
	}
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z, three: v.three}, nil
}

// Scale multiplies every component by s.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s, three: v.three}
}

// Div divides every component by s. Division by zero follows IEEE 754.
func (v Vector) Div(s float64) Vector {
	return Vector{X: v.X / s, Y: v.Y / s, Z: v.Z / s, three: v.three}
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return v.Scale(-1)
}

// Dot returns the scalar product of v and o.
func (v Vector) Dot(o Vector) (float64, error) {
	if !v.SameDim(o) {
		return 0, mismatch("dot", v, o)
	}
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z, nil
}

// Hadamard returns the component-wise product of v and o.
func (v Vector) Hadamard(o Vector) (Vector, error) {
	if !v.SameDim(o) {
		return Vector{}, mismatch("hadamard", v, o)
	}
	return Vector{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z, three: v.three}, nil
}

// Cross returns v × o. Both operands must be 3D.
func (v Vector) Cross(o Vector) (Vector, error) {
	if !v.three || !o.three {
		return Vector{}, mismatch("cross", v, o)
	}
	return New3(
		v.Y*o.Z-v.Z*o.Y,
		v.Z*o.X-v.X*o.Z,
		v.X*o.Y-v.Y*o.X,
	), nil
}

func (v Vector) Distance(o Vector) (float64, error) {
	d, err := v.Sub(o)
	if err != nil {
		return 0, mismatch("distance", v, o)
	}
	return d.Magnitude(), nil
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// of the same dimension when v has zero magnitude.
func (v Vector) Normalize() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Zero(v.Dim())
	}
	return v.Div(m)
}

// SetMagnitude returns a vector pointing like v with length m.
func (v Vector) SetMagnitude(m float64) Vector {
	return v.Normalize().Scale(m)
}

// Limit rescales v in place to maxLen when its magnitude exceeds it.
func (v *Vector) Limit(maxLen float64) {
	if v.Magnitude() > maxLen {
		*v = v.SetMagnitude(maxLen)
	}
}

// AngleXY is the inclination of v in the xy plane.
func (v Vector) AngleXY() float64 { return math.Atan2(v.Y, v.X) }

// AngleXZ is the inclination of v in the xz plane.
func (v Vector) AngleXZ() float64 { return math.Atan2(v.Z, v.X) }

// AngleYZ is the inclination of v in the yz plane.
func (v Vector) AngleYZ() float64 { return math.Atan2(v.Z, v.Y) }

// ApproxEqual compares two vectors of equal dimension within tol per
// component.
func (v Vector) ApproxEqual(o Vector, tol float64) bool {
	if !v.SameDim(o) {
		return false
	}
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

func (v Vector) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	if v.three {
		return fmt.Sprintf("Vector3D(%g, %g, %g)", v.X, v.Y, v.Z)
	}
	return fmt.Sprintf("Vector2D(%g, %g)", v.X, v.Y)
}
