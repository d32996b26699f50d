// Package neopix maps logical matrix cells onto a chain of addressable
// LEDs and drives a pixel sink.
package neopix

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration reports matrix or color parameters that cannot be used
// to build a strip.
var ErrConfiguration = errors.New("neopix: invalid configuration")

// Wiring is the physical order of LEDs in a matrix.
type Wiring int

const (
	// RowMajor numbers every column top to bottom.
	RowMajor Wiring = iota
	// Serpentine runs even columns top to bottom and odd columns bottom to
	// top, as when one strip is folded back and forth.
	Serpentine
)

func (w Wiring) String() string {
	switch w {
	case RowMajor:
		return "row_major"
	case Serpentine:
		return "serpentine"
	}
	return fmt.Sprintf("Wiring(%d)", int(w))
}

// ParseWiring accepts row_major (or standard) and serpentine (or chain).
func ParseWiring(s string) (Wiring, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row_major", "standard", "standard_matrix":
		return RowMajor, nil
	case "serpentine", "chain", "chain_matrix":
		return Serpentine, nil
	}
	return 0, fmt.Errorf("%w: unknown wiring %q", ErrConfiguration, s)
}

// Topology is the precomputed (col, row) → LED index table. It is immutable
// and safe to share.
type Topology struct {
	columns int
	rows    int
	wiring  Wiring
	index   []int // column-major: index[col*rows+row]
	coord   []cell
}

type cell struct{ col, row int }

// NewTopology builds the table for a columns×rows matrix.
func NewTopology(columns, rows int, w Wiring) (*Topology, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: matrix %dx%d", ErrConfiguration, columns, rows)
	}
	if w != RowMajor && w != Serpentine {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, w)
	}

	n := columns * rows
	t := &Topology{
		columns: columns,
		rows:    rows,
		wiring:  w,
		index:   make([]int, n),
		coord:   make([]cell, n),
	}
	for col := 0; col < columns; col++ {
		for row := 0; row < rows; row++ {
			i := col*rows + row
			if w == Serpentine && col%2 == 1 {
				i = col*rows + rows - row - 1
			}
			t.index[col*rows+row] = i
			t.coord[i] = cell{col, row}
		}
	}
	return t, nil
}

func (t *Topology) Columns() int   { return t.columns }
func (t *Topology) Rows() int      { return t.rows }
func (t *Topology) Wiring() Wiring { return t.wiring }
func (t *Topology) Len() int       { return len(t.index) }

// Index returns the LED index of a cell. ok is false outside the matrix.
func (t *Topology) Index(col, row int) (idx int, ok bool) {
	if col < 0 || col >= t.columns || row < 0 || row >= t.rows {
		return 0, false
	}
	return t.index[col*t.rows+row], true
}

// Coord is the inverse of Index.
func (t *Topology) Coord(idx int) (col, row int, ok bool) {
	if idx < 0 || idx >= len(t.coord) {
		return 0, 0, false
	}
	c := t.coord[idx]
	return c.col, c.row, true
}

func (t *Topology) String() string {
	return fmt.Sprintf("%dx%d %v", t.columns, t.rows, t.wiring)
}
