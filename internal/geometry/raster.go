package geometry

import (
	"fmt"
	"math"
)

// Rasterizer draws shapes into a Buffer. It embeds the buffer, so the
// primitive pixel, line and rectangle operations are available directly.
type Rasterizer struct {
	*Buffer
}

// NewRasterizer allocates a buffer for the named color format.
func NewRasterizer(width, height int, format string) (*Rasterizer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	buf, err := NewBuffer(width, height, f)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{Buffer: buf}, nil
}

// WrapRasterizer draws into caller-owned storage.
func WrapRasterizer(data []byte, width, height int, format string, stride int) (*Rasterizer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	buf, err := Wrap(data, width, height, f, stride)
	if err != nil {
		return nil, err
	}
	return &Rasterizer{Buffer: buf}, nil
}

// Polygon connects consecutive vertices and closes the shape. Vertices are
// truncated to integers first. The filled variant fills the bounding box of
// each edge rather than the interior.
func (r *Rasterizer) Polygon(points []Point, c uint16, filled bool) {
	pts := RoundCoordinates(points)
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		if filled {
			x, y := min(p.X, q.X), min(p.Y, q.Y)
			r.FillRect(x, y, absInt(q.X-p.X)+1, absInt(q.Y-p.Y)+1, c)
		} else {
			r.Line(p.X, p.Y, q.X, q.Y, c)
		}
	}
}

// RectangleCenter draws an a×b rectangle centred on (xc, yc).
func (r *Rasterizer) RectangleCenter(xc, yc, a, b float64, c uint16, filled bool) {
	x := int(xc - a/2)
	y := int(yc - b/2)
	if filled {
		r.FillRect(x, y, int(a), int(b), c)
	} else {
		r.Rect(x, y, int(a), int(b), c)
	}
}

// RectanglePoints returns the corners of an a×b rectangle centred on
// (xc, yc), clockwise from top-left.
func RectanglePoints(xc, yc, a, b float64) []Point {
	ha, hb := a/2, b/2
	return []Point{
		{xc - ha, yc - hb},
		{xc + ha, yc - hb},
		{xc + ha, yc + hb},
		{xc - ha, yc + hb},
	}
}

// Circle draws a circle of radius rad with the midpoint algorithm. Each
// step plots the eight symmetric octant points, or four horizontal spans
// when filled.
func (r *Rasterizer) Circle(xc, yc, rad int, c uint16, filled bool) {
	x, y := 0, rad
	d := 3 - 2*rad
	for y >= x {
		if filled {
			r.Line(xc-x, yc-y, xc+x, yc-y, c)
			r.Line(xc-x, yc+y, xc+x, yc+y, c)
			r.Line(xc-y, yc-x, xc+y, yc-x, c)
			r.Line(xc-y, yc+x, xc+y, yc+x, c)
		} else {
			r.SetPixel(xc+x, yc+y, c)
			r.SetPixel(xc+y, yc+x, c)
			r.SetPixel(xc-y, yc+x, c)
			r.SetPixel(xc-x, yc+y, c)
			r.SetPixel(xc-x, yc-y, c)
			r.SetPixel(xc-y, yc-x, c)
			r.SetPixel(xc+y, yc-x, c)
			r.SetPixel(xc+x, yc-y, c)
		}
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}
}

// CircleSegment plots the arc of radius rad from start to end degrees
// inclusive, one point per degree.
func (r *Rasterizer) CircleSegment(xc, yc int, rad float64, start, end int, c uint16) {
	for deg := start; deg <= end; deg++ {
		a := float64(deg) * math.Pi / 180
		dx := int(math.RoundToEven(rad * math.Cos(a)))
		dy := int(math.RoundToEven(rad * math.Sin(a)))
		r.SetPixel(xc+dx, yc+dy, c)
	}
}

// Ellipse draws an ellipse with semi-axes a and b using the two-region
// midpoint method. Region one runs while the tangent slope is shallower
// than -1. Decision variables are kept at four times their true value so
// the arithmetic stays in integers.
func (r *Rasterizer) Ellipse(xc, yc, a, b int, c uint16, filled bool) {
	if a < 0 || b < 0 {
		return
	}
	plot := func(x, y int) {
		if filled {
			r.VLine(xc+x, yc-y, 2*y+1, c)
			r.VLine(xc-x, yc-y, 2*y+1, c)
			return
		}
		r.SetPixel(xc+x, yc+y, c)
		r.SetPixel(xc-x, yc+y, c)
		r.SetPixel(xc+x, yc-y, c)
		r.SetPixel(xc-x, yc-y, c)
	}

	a2, b2 := a*a, b*b
	x, y := 0, b
	fx, fy := 0, 2*a2*y
	p := 4*b2 - 4*a2*b + a2
	for fx < fy {
		plot(x, y)
		if p < 0 {
			p += 4 * b2 * (2*x + 3)
		} else {
			p += 4 * (b2*(2*x+3) + a2*(2-2*y))
			y--
			fy -= 2 * a2
		}
		x++
		fx += 2 * b2
	}

	p = b2*(2*x+1)*(2*x+1) + 4*a2*(y-1)*(y-1) - 4*a2*b2
	for y >= 0 {
		plot(x, y)
		if p > 0 {
			p += 4 * a2 * (3 - 2*y)
		} else {
			p += 4 * (b2*(2*x+2) + a2*(3-2*y))
			x++
			fx += 2 * b2
		}
		y--
		fy -= 2 * a2
	}
}

// Curve draws a polyline through points without closing it.
func (r *Rasterizer) Curve(points []Point, c uint16) {
	pts := RoundCoordinates(points)
	for i := 1; i < len(pts); i++ {
		r.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c)
	}
}

func (r *Rasterizer) String() string {
	return fmt.Sprintf("Rasterizer(%dx%d %v)", r.width, r.height, r.format)
}
