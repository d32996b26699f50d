// Package export renders stored frames as images.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/rgb"
)

// Trail is a body's path in matrix coordinates, drawn over the frame.
type Trail struct {
	Name   string
	Color  rgb.Color
	Points []geometry.Point
}

// FrameToSVG draws one circle per LED, scale pixels apart. Unlit LEDs are
// drawn dim so the matrix layout stays visible. With a topology every LED
// carries its strip index as data-index.
func FrameToSVG(grid [][]rgb.Color, topo *neopix.Topology, scale float64, trails ...Trail) string {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ""
	}

	rows, cols := len(grid), len(grid[0])
	width := float64(cols) * scale
	height := float64(rows) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g>
`, width, height, width, height))

	radius := scale * 0.4
	for y, row := range grid {
		for x, c := range row {
			fill := c.Hex()
			if c.IsBlack() {
				fill = "#1a1a1a"
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"`, cx, cy, radius, fill))
			if topo != nil {
				if idx, ok := topo.Index(x, y); ok {
					sb.WriteString(fmt.Sprintf(` data-index="%d"`, idx))
				}
			}
			sb.WriteString("/>\n")
		}
	}
	sb.WriteString("</g>\n")

	for _, t := range trails {
		sb.WriteString(trailPath(t, scale))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func trailPath(t Trail, scale float64) string {
	if len(t.Points) < 2 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" stroke-opacity="0.6" data-body="%s" d="M`,
		t.Color.Hex(), t.Name))
	for i, p := range t.Points {
		x := p.X*scale + scale/2
		y := p.Y*scale + scale/2
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
`)
	return sb.String()
}
