// Package geometry rasterizes shapes into packed frame buffers.
//
// A Buffer stores pixels in one of the byte layouts used by small displays:
// 1-bit mono (vertical or horizontal packing), RGB565, and 2, 4 or 8-bit
// grayscale. Drawing never fails on coordinates; anything outside the
// buffer is clipped.
//
// The free functions (RotatePolygon, ScalePolygon, BezierCurve, ...) are pure
// coordinate math on Points and do not touch a buffer. RoundCoordinates
// truncates toward zero; callers that need nearest-integer rounding must do
// it themselves.
package geometry
