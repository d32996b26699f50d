package engine

import (
	"fmt"
	"strings"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/scene"
)

// Mode selects how a frame reaches the LEDs.
type Mode int

const (
	// ModeBuffer copies the whole rasterized frame to the matrix.
	ModeBuffer Mode = iota
	// ModeDirect clears the strip and lights one LED per tracked body.
	// Scene geometry is still rasterized for observers but not shown.
	ModeDirect
)

func (m Mode) String() string {
	switch m {
	case ModeBuffer:
		return "buffer"
	case ModeDirect:
		return "direct"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "buffer":
		return ModeBuffer, nil
	case "direct":
		return ModeDirect, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
}

// Frame is what metrics and observers see after each step. Buffer is the
// engine's own rasterizer and is overwritten by the next step; Bodies and
// Visible belong to the frame.
type Frame struct {
	Index   int
	Bodies  []scene.Body
	Visible []bool
	Buffer  *geometry.Buffer
	Columns int
	Rows    int
}

// Grid returns the frame's matrix cells as rows of colors.
func (f Frame) Grid() [][]rgb.Color {
	grid := make([][]rgb.Color, f.Rows)
	for y := range grid {
		grid[y] = make([]rgb.Color, f.Columns)
		for x := range grid[y] {
			grid[y][x] = f.Buffer.Color(x, y)
		}
	}
	return grid
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Config struct {
	Frames  int
	Mode    Mode
	Reflect bool
	// SampleEvery records body samples every n frames. Zero means every
	// frame.
	SampleEvery int
}

// Sample is one body's state after a frame.
type Sample struct {
	Frame   int
	Body    string
	X, Y    float64
	VX, VY  float64
	Visible bool
}

type Result struct {
	Frames  int
	Samples []Sample
	Metrics map[string]float64
	// Final holds the last frame's matrix cells, row by row.
	Final [][]rgb.Color
}
