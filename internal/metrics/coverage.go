package metrics

import "github.com/san-kum/neomatrix/internal/engine"

// Coverage is the mean fraction of matrix cells lit per frame.
type Coverage struct {
	name    string
	samples int
	total   float64
}

func NewCoverage() *Coverage {
	return &Coverage{name: "coverage"}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(f engine.Frame) {
	cells := f.Columns * f.Rows
	if cells == 0 {
		return
	}
	lit := 0
	for y := 0; y < f.Rows; y++ {
		for x := 0; x < f.Columns; x++ {
			if f.Buffer.Pixel(x, y) != 0 {
				lit++
			}
		}
	}
	c.total += float64(lit) / float64(cells)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.total = 0
	c.samples = 0
}

// Standard returns the metrics a run records by default.
func Standard() []engine.Metric {
	return []engine.Metric{NewKineticEnergy(), NewEnergyDrift(), NewCoverage(), NewContainment()}
}
