// Package scene holds the named simulations that can be shown on the
// matrix. A scene owns its bodies, advances them one tick per Step and
// draws any extra geometry (springs, attractors, shapes) into a
// Rasterizer. Tracked bodies are drawn by the caller.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

var (
	ErrUnknownScene  = errors.New("scene: unknown scene")
	ErrInvalidMatrix = errors.New("scene: matrix too small")
)

// Scene is one simulation.
type Scene interface {
	Name() string
	Step() error
	Draw(r *geometry.Rasterizer)
	Bodies() []Body
	physics.Configurable
}

// Body is a tracked mover and the color it is drawn in.
type Body struct {
	ID    physics.BodyID
	Name  string
	Mover *physics.Mover
	Color rgb.Color
}

// Settings sizes a scene to the matrix.
type Settings struct {
	Columns int
	Rows    int
	Bodies  int
	Seed    int64
}

func (s Settings) bodies(def int) int {
	if s.Bodies > 0 {
		return s.Bodies
	}
	return def
}

func (s Settings) center() vector.Vector {
	return vector.New(float64(s.Columns-1)/2, float64(s.Rows-1)/2)
}

type factory struct {
	description string
	build       func(Settings) (Scene, error)
}

var scenes = map[string]factory{
	"bounce":   {"balls falling under gravity into a pool of drag", func(s Settings) (Scene, error) { return NewBounce(s) }},
	"spring":   {"a weight hanging from a damped spring", func(s Settings) (Scene, error) { return NewSpringScene(s) }},
	"pendulum": {"a frictional pendulum swinging from the top edge", func(s Settings) (Scene, error) { return NewPendulumScene(s) }},
	"orbit":    {"bodies circling a central attractor", func(s Settings) (Scene, error) { return NewOrbit(s) }},
	"wander":   {"bodies drifting through a perlin flow field", func(s Settings) (Scene, error) { return NewWander(s) }},
	"shapes":   {"rotating polygon, ellipse and a swinging Bézier curve", func(s Settings) (Scene, error) { return NewShapes(s) }},
}

// New builds the named scene.
func New(name string, s Settings) (Scene, error) {
	f, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if s.Columns < 4 || s.Rows < 4 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidMatrix, s.Columns, s.Rows)
	}
	return f.build(s)
}

// Names lists the registered scenes in order.
func Names() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line summary of a scene.
func Describe(name string) string {
	return scenes[name].description
}

// world is the body bookkeeping shared by all scenes.
type world struct {
	name     string
	settings Settings
	reg      *physics.Registry
	colors   []rgb.Color
	rng      *rand.Rand
}

func newWorld(name string, s Settings) world {
	return world{
		name:     name,
		settings: s,
		reg:      physics.NewRegistry(),
		rng:      rand.New(rand.NewSource(s.Seed)),
	}
}

func (w *world) Name() string { return w.name }

func (w *world) add(name string, m *physics.Mover, c rgb.Color) (physics.BodyID, error) {
	id, err := w.reg.Add(name, m)
	if err != nil {
		return id, err
	}
	w.colors = append(w.colors, c)
	return id, nil
}

func (w *world) Bodies() []Body {
	out := make([]Body, 0, w.reg.Len())
	_ = w.reg.Each(func(id physics.BodyID, m *physics.Mover) error {
		out = append(out, Body{ID: id, Name: w.reg.Name(id), Mover: m, Color: w.colors[id]})
		return nil
	})
	return out
}

// wheelColor spreads n bodies around the color wheel.
func wheelColor(i, n int) rgb.Color {
	return rgb.Wheel(uint8(i * 255 / max(n, 1)))
}

func unknownParam(scene, name string) error {
	return fmt.Errorf("%s: unknown param: %s", scene, name)
}
