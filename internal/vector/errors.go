package vector

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates an operation combined a 2D and a 3D vector.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// DimensionError wraps ErrDimensionMismatch with the operation and the
// dimensions that were involved.
type DimensionError struct {
	Op    string
	Left  int
	Right int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("vector: %s: dimension mismatch (%dD vs %dD)", e.Op, e.Left, e.Right)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func mismatch(op string, a, b Vector) error {
	return &DimensionError{Op: op, Left: a.Dim(), Right: b.Dim()}
}
