package geometry

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/san-kum/neomatrix/internal/vector"
)

// maxBezierDegree keeps combin.Binomial inside int range.
const maxBezierDegree = 60

// Point is a 2D coordinate before rasterization.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{x, y} }

// PointOf drops any z component of v.
func PointOf(v vector.Vector) Point { return Point{v.X, v.Y} }

// PointsFromVectors converts a vector path to points.
func PointsFromVectors(vs []vector.Vector) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = PointOf(v)
	}
	return out
}

// Vector lifts p back into a 2D vector.
func (p Point) Vector() vector.Vector { return vector.New(p.X, p.Y) }

// Trunc converts p to integer coordinates, truncating toward zero.
func (p Point) Trunc() image.Point { return image.Pt(int(p.X), int(p.Y)) }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// RoundCoordinates truncates every point toward zero. It does not round to
// nearest.
func RoundCoordinates(points []Point) []image.Point {
	out := make([]image.Point, len(points))
	for i, p := range points {
		out[i] = p.Trunc()
	}
	return out
}

// RotatePolygon returns points rotated by angle radians about center.
func RotatePolygon(points []Point, angle float64, center Point) []Point {
	sin, cos := math.Sincos(angle)
	out := make([]Point, len(points))
	for i, p := range points {
		dx, dy := p.X-center.X, p.Y-center.Y
		out[i] = Point{
			X: center.X + dx*cos - dy*sin,
			Y: center.Y + dx*sin + dy*cos,
		}
	}
	return out
}

// TranslatePolygon shifts points in place and returns the same slice.
func TranslatePolygon(points []Point, dx, dy float64) []Point {
	for i := range points {
		points[i].X += dx
		points[i].Y += dy
	}
	return points
}

// ScalePolygon returns points scaled about the origin.
func ScalePolygon(points []Point, sx, sy float64) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{p.X * sx, p.Y * sy}
	}
	return out
}

// ScaleCircle returns the circle with its radius scaled by the length of
// (sx, sy). The center is unchanged.
func ScaleCircle(xc, yc, r, sx, sy float64) (float64, float64, float64) {
	return xc, yc, r * math.Hypot(sx, sy)
}

// BezierCurve samples the Bézier curve with the given control points at
// steps+1 evenly spaced parameters in [0, 1].
func BezierCurve(points []Point, steps int) ([]Point, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSteps, steps)
	}
	n := len(points) - 1
	if n < 0 || n > maxBezierDegree {
		return nil, fmt.Errorf("%w: %d points", ErrControlPoints, len(points))
	}

	coef := make([]float64, n+1)
	for i := range coef {
		coef[i] = float64(combin.Binomial(n, i))
	}

	curve := make([]Point, steps+1)
	for s := range curve {
		t := float64(s) / float64(steps)
		var x, y float64
		for i, p := range points {
			w := coef[i] * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
			x += p.X * w
			y += p.Y * w
		}
		curve[s] = Point{x, y}
	}
	return curve, nil
}
