package neopix

import (
	"sync"

	"github.com/san-kum/neomatrix/internal/rgb"
)

// Sink is the LED driver a Strip writes to. SetPixel ignores indices
// outside [0, Len()).
type Sink interface {
	Len() int
	SetPixel(index int, c rgb.Color)
	Fill(c rgb.Color)
	Show() error
}

// MemorySink keeps pixels in memory. Show latches the pending pixels into
// the visible frame, like a strip latching its shift register.
type MemorySink struct {
	mu      sync.RWMutex
	pending []rgb.Color
	frame   []rgb.Color
	shows   int
}

func NewMemorySink(n int) *MemorySink {
	return &MemorySink{
		pending: make([]rgb.Color, n),
		frame:   make([]rgb.Color, n),
	}
}

func (s *MemorySink) Len() int { return len(s.pending) }

func (s *MemorySink) SetPixel(index int, c rgb.Color) {
	if index < 0 || index >= len(s.pending) {
		return
	}
	s.mu.Lock()
	s.pending[index] = c
	s.mu.Unlock()
}

func (s *MemorySink) Fill(c rgb.Color) {
	s.mu.Lock()
	for i := range s.pending {
		s.pending[i] = c
	}
	s.mu.Unlock()
}

func (s *MemorySink) Show() error {
	s.mu.Lock()
	copy(s.frame, s.pending)
	s.shows++
	s.mu.Unlock()
	return nil
}

// Pending returns the value written at index but not yet shown.
func (s *MemorySink) Pending(index int) rgb.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.pending) {
		return rgb.Black
	}
	return s.pending[index]
}

// Frame returns a copy of the last shown frame in LED order.
func (s *MemorySink) Frame() []rgb.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]rgb.Color(nil), s.frame...)
}

// Shows counts calls to Show.
func (s *MemorySink) Shows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shows
}
