// Package input decodes button and rotary encoder edges into the plain
// values a scene reads: click counts, long presses and encoder steps.
//
// Nothing here touches hardware. A driver, test or terminal key handler
// feeds level changes with explicit timestamps.
package input

import "time"

const (
	// Debounce is the shortest press that counts as a click.
	Debounce = 25 * time.Millisecond

	DefaultClickInterval = 200 * time.Millisecond
	DefaultLongPress     = 1500 * time.Millisecond

	// LongPressState is the state value after a long press.
	LongPressState = -1
)

// Powering says which level a released switch reads.
type Powering int

const (
	// PullUp: switch to ground, released reads high.
	PullUp Powering = iota
	// PullDown: switch to supply, released reads low.
	PullDown
)

func (p Powering) restLevel() bool { return p == PullUp }

// Button counts clicks. Releases that follow the previous click within
// ClickInterval add to the count; a press held for LongPress sets the state
// to LongPressState. Presses shorter than Debounce are ignored.
type Button struct {
	ClickInterval time.Duration
	LongPress     time.Duration

	rest      bool
	level     bool
	pressed   bool
	released  bool
	state     int
	lastState int

	lastEdge  time.Time
	lastClick time.Time
}

func NewButton(p Powering) *Button {
	return &Button{
		ClickInterval: DefaultClickInterval,
		LongPress:     DefaultLongPress,
		rest:          p.restLevel(),
		level:         p.restLevel(),
	}
}

// Edge feeds the pin level read at time now. Repeated levels are ignored.
func (b *Button) Edge(level bool, now time.Time) {
	if level == b.level {
		return
	}
	b.level = level

	if level != b.rest {
		b.pressed = true
		b.released = false
		b.lastEdge = now
		return
	}

	held := now.Sub(b.lastEdge)
	b.lastEdge = now
	if !b.pressed {
		return
	}
	switch {
	case held >= b.LongPress:
		b.state = LongPressState
		b.lastState = b.state
	case held > Debounce:
		if b.lastState >= 1 && now.Sub(b.lastClick) < b.ClickInterval {
			b.state++
		} else {
			b.state = 1
		}
		b.lastState = b.state
		b.lastClick = now
	}
	b.pressed = false
	b.released = true
}

// Press and Release are Edge with the level implied by the powering.
func (b *Button) Press(now time.Time)   { b.Edge(!b.rest, now) }
func (b *Button) Release(now time.Time) { b.Edge(b.rest, now) }

// Click is a press and release held for d.
func (b *Button) Click(at time.Time, d time.Duration) {
	b.Press(at)
	b.Release(at.Add(d))
}

// State is the click count, LongPressState, or 0 after Reset.
func (b *Button) State() int { return b.state }

// Reset clears the state once the caller has handled it. The click history
// used for multi-click counting is kept.
func (b *Button) Reset() { b.state = 0 }

func (b *Button) IsPressed() bool  { return b.pressed }
func (b *Button) IsReleased() bool { return b.released }
