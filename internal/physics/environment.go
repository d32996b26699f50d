package physics

import "github.com/san-kum/neomatrix/internal/vector"

// Environment is an axis-aligned region with a drag coefficient, e.g. a pool
// of liquid at the bottom of the matrix.
type Environment struct {
	X, Y          float64
	Width, Height float64
	Drag          float64
}

// Contains reports whether p lies strictly inside the region.
func (e *Environment) Contains(p vector.Vector) bool {
	return p.X > e.X && p.X < e.X+e.Width &&
		p.Y > e.Y && p.Y < e.Y+e.Height
}
