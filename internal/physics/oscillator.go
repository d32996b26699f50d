package physics

import "math"

// Oscillator accumulates a phase for periodic motion.
type Oscillator struct {
	Angle           float64
	Velocity        float64
	Amplitude       float64
	AngularVelocity float64
}

// Oscillate advances the phase by Velocity.
func (o *Oscillator) Oscillate() {
	o.Angle += o.Velocity
}

// Offset is the current displacement Amplitude·sin(Angle).
func (o *Oscillator) Offset() float64 {
	return o.Amplitude * math.Sin(o.Angle)
}
