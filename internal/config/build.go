package config

import (
	"github.com/san-kum/neomatrix/internal/display"
	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/scene"
)

// Build wires an in-memory strip, the display, a rasterizer and the
// configured scene into an engine. c should be validated first.
func (c *Config) Build() (*engine.Engine, error) {
	stripCfg, err := c.Strip()
	if err != nil {
		return nil, err
	}
	strip, err := neopix.New(neopix.NewMemorySink(c.Matrix.Columns*c.Matrix.Rows), stripCfg)
	if err != nil {
		return nil, err
	}
	disp, err := display.New(strip)
	if err != nil {
		return nil, err
	}
	disp.Reflect = c.Display.Reflect

	r, err := geometry.NewRasterizer(c.Matrix.Columns, c.Matrix.Rows, c.Color.Format)
	if err != nil {
		return nil, err
	}
	sc, err := scene.New(c.Scene.Name, c.SceneSettings())
	if err != nil {
		return nil, err
	}
	if err := c.ApplyParams(sc); err != nil {
		return nil, err
	}

	e, err := engine.New(sc, disp, r)
	if err != nil {
		return nil, err
	}
	mode, err := engine.ParseMode(c.Display.Mode)
	if err != nil {
		return nil, err
	}
	e.SetMode(mode)
	return e, nil
}

// Builder rebuilds engines from c for any scene. Scene params and body
// count only carry over to the configured scene.
func (c *Config) Builder() func(string) (*engine.Engine, error) {
	return func(name string) (*engine.Engine, error) {
		cc := c.Clone()
		if name != cc.Scene.Name {
			cc.Scene.Name = name
			cc.Scene.Params = nil
			cc.Scene.Bodies = 0
		}
		return cc.Build()
	}
}
