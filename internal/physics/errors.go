package physics

import "errors"

var (
	// ErrParameterBounds indicates a body parameter outside its valid range.
	ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

	// ErrNotConnected indicates a spring used before Connect.
	ErrNotConnected = errors.New("physics: spring has no connected mover")

	// ErrUnknownBody indicates a BodyID not present in the registry.
	ErrUnknownBody = errors.New("physics: unknown body")
)
