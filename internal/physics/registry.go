package physics

import "fmt"

// BodyID is a stable handle to a mover owned by a Registry.
type BodyID int

// Registry owns the movers of a scene. Springs and attractors that act on a
// body look it up by id each tick instead of keeping a copy of its state.
type Registry struct {
	movers []*Mover
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add validates m and takes ownership of it.
func (r *Registry) Add(name string, m *Mover) (BodyID, error) {
	if err := m.Validate(); err != nil {
		return -1, fmt.Errorf("add %s: %w", name, err)
	}
	r.movers = append(r.movers, m)
	r.names = append(r.names, name)
	return BodyID(len(r.movers) - 1), nil
}

func (r *Registry) Mover(id BodyID) (*Mover, error) {
	if id < 0 || int(id) >= len(r.movers) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	return r.movers[id], nil
}

func (r *Registry) Name(id BodyID) string {
	if id < 0 || int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

func (r *Registry) Len() int { return len(r.movers) }

// Each calls fn for every body in insertion order and stops at the first
// error.
func (r *Registry) Each(fn func(id BodyID, m *Mover) error) error {
	for i, m := range r.movers {
		if err := fn(BodyID(i), m); err != nil {
			return err
		}
	}
	return nil
}

// Update integrates every body once.
func (r *Registry) Update() error {
	return r.Each(func(id BodyID, m *Mover) error {
		if err := m.Update(); err != nil {
			return fmt.Errorf("update %s: %w", r.names[id], err)
		}
		return nil
	})
}

// Connect applies s to the body id.
func (r *Registry) Connect(s *Spring, id BodyID) error {
	m, err := r.Mover(id)
	if err != nil {
		return err
	}
	return s.Connect(m)
}

// Attract applies a to the body id.
func (r *Registry) Attract(a *Attractor, id BodyID) error {
	m, err := r.Mover(id)
	if err != nil {
		return err
	}
	return a.Attract(m)
}
