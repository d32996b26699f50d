package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("engine: invalid configuration")

	// ErrInvalidState indicates a body whose state became NaN or Inf.
	ErrInvalidState = errors.New("engine: invalid body state (NaN or Inf detected)")
)

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Scene   string
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s frame %d: %v", e.Scene, e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
