package vector

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Axis selects the rotation axis for Rotate3D.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis accepts "x", "y" or "z" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("vector: unknown axis %q", s)
}

// Rotate2D rotates the xy components of v by angle radians about pivot.
// A 3D vector keeps its z and needs a 3D pivot.
func (v *Vector) Rotate2D(angle float64, pivot Vector) error {
	if v.three != pivot.three {
		return mismatch("rotate2d", *v, pivot)
	}
	sin, cos := math.Sincos(angle)
	dx, dy := v.X-pivot.X, v.Y-pivot.Y
	v.X = pivot.X + dx*cos - dy*sin
	v.Y = pivot.Y + dx*sin + dy*cos
	return nil
}

// Rotate3D rotates v by angle radians about pivot around the given axis.
// Both v and pivot must be 3D.
func (v *Vector) Rotate3D(angle float64, pivot Vector, axis Axis) error {
	if !v.three || !pivot.three {
		return mismatch("rotate3d", *v, pivot)
	}
	r, err := rotationMatrix(angle, axis)
	if err != nil {
		return err
	}

	d := mat.NewVecDense(3, []float64{v.X - pivot.X, v.Y - pivot.Y, v.Z - pivot.Z})
	var out mat.VecDense
	out.MulVec(r, d)

	v.X = pivot.X + out.AtVec(0)
	v.Y = pivot.Y + out.AtVec(1)
	v.Z = pivot.Z + out.AtVec(2)
	return nil
}

// rotationMatrix returns the 3x3 matrix rotating in the plane orthogonal to
// axis. For AxisY the rotation runs from x toward z.
func rotationMatrix(angle float64, axis Axis) (*mat.Dense, error) {
	s, c := math.Sincos(angle)
	switch axis {
	case AxisX:
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		}), nil
	case AxisY:
		return mat.NewDense(3, 3, []float64{
			c, 0, -s,
			0, 1, 0,
			s, 0, c,
		}), nil
	case AxisZ:
		return mat.NewDense(3, 3, []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		}), nil
	}
	return nil, fmt.Errorf("vector: unknown axis %v", axis)
}
