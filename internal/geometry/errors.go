package geometry

import "errors"

var (
	ErrInvalidColorFormat = errors.New("geometry: unsupported color format")
	ErrBufferSize         = errors.New("geometry: buffer too small")
	ErrInvalidSteps       = errors.New("geometry: step count must be positive")
	ErrControlPoints      = errors.New("geometry: invalid control points")
)
