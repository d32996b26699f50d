// Package vector provides the 2D/3D vector value type shared by the physics
// kernel, the rasterizer and the display.
//
// A [Vector] carries its own dimension: vectors built with [New] are 2D,
// vectors built with [New3] are 3D. Every binary operation requires both
// operands to have the same dimension and reports [ErrDimensionMismatch]
// otherwise. There is no implicit promotion from 2D to 3D.
//
// # Example
//
//	pos := vector.New(4, 2)
//	vel := vector.New(0.5, -0.25)
//	next, err := pos.Add(vel)
//
// # Ownership
//
// Vectors are values. Bodies copy the vectors they are given; mutating
// methods (Limit, Rotate2D, Rotate3D) only touch the receiver.
package vector
