package input

import (
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestButton_SingleClick(t *testing.T) {
	b := NewButton(PullUp)
	b.Press(t0)
	if !b.IsPressed() {
		t.Fatal("expected pressed")
	}
	b.Release(t0.Add(ms(80)))
	if b.State() != 1 || !b.IsReleased() || b.IsPressed() {
		t.Fatalf("state = %d pressed=%v released=%v", b.State(), b.IsPressed(), b.IsReleased())
	}
}

func TestButton_Debounce(t *testing.T) {
	b := NewButton(PullUp)
	b.Click(t0, ms(10))
	if b.State() != 0 {
		t.Errorf("bounce counted as click: state %d", b.State())
	}
	if !b.IsReleased() {
		t.Error("release still tracked after bounce")
	}
}

func TestButton_MultiClick(t *testing.T) {
	b := NewButton(PullUp)
	b.Click(t0, ms(50))
	b.Click(t0.Add(ms(120)), ms(50))
	b.Click(t0.Add(ms(240)), ms(50))
	if b.State() != 3 {
		t.Fatalf("triple click state = %d", b.State())
	}

	// outside the interval starts a new count
	b.Click(t0.Add(ms(1000)), ms(50))
	if b.State() != 1 {
		t.Fatalf("late click state = %d", b.State())
	}
}

func TestButton_LongPress(t *testing.T) {
	b := NewButton(PullDown)
	b.Edge(true, t0)
	b.Edge(true, t0.Add(ms(10)))
	b.Edge(false, t0.Add(ms(1600)))
	if b.State() != LongPressState {
		t.Fatalf("state = %d, want long press", b.State())
	}

	// a click right after a long press is a fresh single click
	b.Click(t0.Add(ms(1650)), ms(40))
	if b.State() != 1 {
		t.Fatalf("state = %d", b.State())
	}
	b.Reset()
	if b.State() != 0 {
		t.Fatal("reset did not clear state")
	}
}

func TestEncoder_Turn(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		turns  int
		want   int
		action Action
	}{
		{"cw forward", CW, 3, 130, Increment},
		{"cw back", CW, -2, 80, Decrement},
		{"ccw forward", CCW, 3, 70, Decrement},
		{"ccw back", CCW, -2, 120, Increment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder(100, 10, tt.dir, nil)
			e.Turn(tt.turns)
			if e.Value() != tt.want {
				t.Errorf("value = %d, want %d", e.Value(), tt.want)
			}
			if e.Action() != tt.action {
				t.Errorf("action = %v, want %v", e.Action(), tt.action)
			}
		})
	}
}

func TestEncoder_IgnoresChannelB(t *testing.T) {
	e := NewEncoder(0, 1, CW, nil)
	e.Edge(false, true)
	e.Edge(false, false)
	if e.Value() != 0 || e.Action() != NoAction {
		t.Errorf("B-only edges changed value to %d", e.Value())
	}
}

func TestEncoder_Button(t *testing.T) {
	e := NewEncoder(0, 1, CW, nil)
	if e.Clicks() != 0 || e.Button() != nil {
		t.Fatal("encoder without switch")
	}
	e.ResetClicks()

	btn := NewButton(PullUp)
	e = NewEncoder(0, 1, CW, btn)
	btn.Click(t0, ms(60))
	if e.Clicks() != 1 {
		t.Fatalf("clicks = %d", e.Clicks())
	}
	e.ResetClicks()
	if btn.State() != 0 {
		t.Fatal("ResetClicks did not reach the button")
	}

	e.SetValue(42)
	if e.Value() != 42 || e.Action() != NoAction {
		t.Fatal("SetValue")
	}
}

func TestParseDirection(t *testing.T) {
	if d, err := ParseDirection("ccw"); err != nil || d != CCW {
		t.Errorf("ParseDirection(ccw) = %v, %v", d, err)
	}
	if _, err := ParseDirection("left"); err == nil {
		t.Error("expected error")
	}
}
