package scene

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/physics"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/vector"
)

// SpringScene hangs a weight from a spring anchored at the top edge. The
// spring length is held between MinLength and MaxLength.
type SpringScene struct {
	world
	Spring    *physics.Spring
	Gravity   float64
	MinLength float64
	MaxLength float64

	bob physics.BodyID
}

func NewSpringScene(s Settings) (*SpringScene, error) {
	c := s.center()
	rest := float64(s.Rows) / 2
	sc := &SpringScene{
		world:     newWorld("spring", s),
		Spring:    physics.NewSpring(vector.New(c.X, 0), rest),
		Gravity:   0.1,
		MinLength: 1,
		MaxLength: float64(s.Rows - 1),
	}

	m := physics.NewMover(vector.New(c.X+float64(s.Columns)/4, rest))
	m.Mass = 2
	id, err := sc.add("bob", m, rgb.Color{R: 255, G: 160})
	if err != nil {
		return nil, err
	}
	sc.bob = id
	return sc, nil
}

func (sc *SpringScene) Step() error {
	m, err := sc.reg.Mover(sc.bob)
	if err != nil {
		return err
	}
	if err := sc.reg.Connect(sc.Spring, sc.bob); err != nil {
		return err
	}
	m.G = sc.Gravity
	if err := m.GravityForce(); err != nil {
		return err
	}
	if err := sc.reg.Update(); err != nil {
		return err
	}
	return sc.Spring.ConstrainLength(sc.MinLength, sc.MaxLength)
}

// Draw renders the spring from anchor to bob.
func (sc *SpringScene) Draw(r *geometry.Rasterizer) {
	m, err := sc.reg.Mover(sc.bob)
	if err != nil {
		return
	}
	a := geometry.PointOf(sc.Spring.Anchor).Trunc()
	p := geometry.PointOf(m.Position).Trunc()
	r.Line(a.X, a.Y, p.X, p.Y, r.Encode(rgb.Color{R: 40, G: 40, B: 40}))
	r.SetPixel(a.X, a.Y, r.Encode(rgb.White))
}

func (sc *SpringScene) GetParams() map[string]float64 {
	params := sc.Spring.GetParams()
	params["gravity"] = sc.Gravity
	return params
}

func (sc *SpringScene) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		sc.Gravity = v
		return nil
	}
	if err := sc.Spring.SetParam(name, v); err != nil {
		return fmt.Errorf("%s: %w", sc.name, err)
	}
	return nil
}
