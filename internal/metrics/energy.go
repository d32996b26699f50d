package metrics

import (
	"math"

	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/scene"
)

// Kinetic sums the kinetic energy of bodies.
func Kinetic(bodies []scene.Body) float64 {
	total := 0.0
	for _, b := range bodies {
		total += b.Mover.KineticEnergy()
	}
	return total
}

// KineticEnergy is the mean total kinetic energy per frame.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f engine.Frame) {
	k.last = Kinetic(f.Bodies)
	k.total += k.last
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Last is the energy of the most recent frame.
func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.last = 0
	k.samples = 0
}

// EnergyDrift is the largest relative change of the total kinetic energy
// from the first observed frame.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (d *EnergyDrift) Name() string { return d.name }

func (d *EnergyDrift) Observe(f engine.Frame) {
	e := Kinetic(f.Bodies)
	d.samples++
	if d.samples == 1 {
		d.initial = e
		return
	}
	if d.initial == 0 {
		return
	}
	drift := math.Abs(e-d.initial) / d.initial
	if drift > d.maxDrift {
		d.maxDrift = drift
	}
}

func (d *EnergyDrift) Value() float64 { return d.maxDrift }

func (d *EnergyDrift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
