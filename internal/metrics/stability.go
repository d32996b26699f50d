package metrics

import "github.com/san-kum/neomatrix/internal/engine"

// Containment is the fraction of frames in which every body was on the
// matrix. With edge reflection it is always 1.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f engine.Frame) {
	c.samples++
	for _, v := range f.Visible {
		if !v {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
