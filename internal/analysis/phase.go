package analysis

import (
	"strings"

	"github.com/san-kum/neomatrix/internal/geometry"
)

// Portrait pairs two series sample by sample, e.g. x against vx. The
// shorter series decides the length.
func Portrait(xs, ys []float64) []geometry.Point {
	n := min(len(xs), len(ys))
	points := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		points[i] = geometry.Pt(xs[i], ys[i])
	}
	return points
}

// Section records (xs[i], ys[i]) whenever cross passes threshold going up.
func Section(cross, xs, ys []float64, threshold float64) []geometry.Point {
	var points []geometry.Point
	n := min(len(cross), len(xs), len(ys))
	for i := 1; i < n; i++ {
		if cross[i-1] < threshold && cross[i] >= threshold {
			points = append(points, geometry.Pt(xs[i], ys[i]))
		}
	}
	return points
}

// PortraitASCII scatters points onto a width×height grid of runes with 10%
// padding on each side. Axes are drawn where zero is in view.
func PortraitASCII(points []geometry.Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
