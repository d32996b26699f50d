package input

import (
	"fmt"
	"strings"
)

// Direction is the rotation that increments an Encoder.
type Direction int

const (
	CW Direction = iota
	CCW
)

func (d Direction) String() string {
	if d == CCW {
		return "CCW"
	}
	return "CW"
}

// ParseDirection accepts CW and CCW. Anything else is an error.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CW":
		return CW, nil
	case "CCW":
		return CCW, nil
	}
	return CW, fmt.Errorf("input: unknown direction %q", s)
}

// Action is the effect of the last encoder step.
type Action int

const (
	NoAction Action = iota
	Increment
	Decrement
)

func (a Action) String() string {
	switch a {
	case Increment:
		return "+"
	case Decrement:
		return "-"
	}
	return ""
}

// Encoder decodes a two-channel incremental rotary encoder. Each change of
// channel A moves the value by Step; channel B decides the sign. An
// optional push switch is held as a Button.
type Encoder struct {
	Step      int
	Direction Direction

	value  int
	lastA  bool
	action Action
	button *Button
}

// NewEncoder starts counting at start. btn may be nil.
func NewEncoder(start, step int, dir Direction, btn *Button) *Encoder {
	return &Encoder{Step: step, Direction: dir, value: start, button: btn}
}

// Edge feeds the current levels of channels A and B.
func (e *Encoder) Edge(a, b bool) {
	if a == e.lastA {
		return
	}
	e.lastA = a

	step := e.Step
	if e.Direction == CCW {
		step = -step
	}
	clockwise := a != b
	if clockwise {
		e.value += step
	} else {
		e.value -= step
	}
	if clockwise == (e.Direction == CW) {
		e.action = Increment
	} else {
		e.action = Decrement
	}
}

// Turn emits n detents, clockwise for positive n.
func (e *Encoder) Turn(n int) {
	cw := n > 0
	if n < 0 {
		n = -n
	}
	for k := 0; k < n; k++ {
		a := !e.lastA
		b := a
		if cw {
			b = !a
		}
		e.Edge(a, b)
	}
}

func (e *Encoder) Value() int     { return e.value }
func (e *Encoder) Action() Action { return e.action }

// SetValue rebases the counter and clears the last action.
func (e *Encoder) SetValue(v int) {
	e.value = v
	e.action = NoAction
}

// Button returns the push switch, or nil.
func (e *Encoder) Button() *Button { return e.button }

// Clicks is the switch state, or 0 without a switch.
func (e *Encoder) Clicks() int {
	if e.button == nil {
		return 0
	}
	return e.button.State()
}

// ResetClicks clears the switch state after it has been handled.
func (e *Encoder) ResetClicks() {
	if e.button != nil {
		e.button.Reset()
	}
}
