// Package config loads and validates the YAML run configuration and turns
// it into the settings each layer is built from.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/rgb"
	"github.com/san-kum/neomatrix/internal/scene"
)

const (
	DefaultColumns  = 32
	DefaultRows     = 8
	DefaultWiring   = "serpentine"
	DefaultFormat   = "RGB565"
	DefaultBitDepth = 8
	DefaultScene    = "bounce"
	DefaultFrames   = 600
	DefaultFPS      = 30
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Matrix  MatrixConfig  `yaml:"matrix"`
	Color   ColorConfig   `yaml:"color"`
	Scene   SceneConfig   `yaml:"scene"`
	Display DisplayConfig `yaml:"display"`
}

type MatrixConfig struct {
	Columns int    `yaml:"columns"`
	Rows    int    `yaml:"rows"`
	Wiring  string `yaml:"wiring"`
}

type ColorConfig struct {
	Format       string  `yaml:"format"`
	Gamma        float64 `yaml:"gamma"`
	BitDepth     int     `yaml:"bit_depth"`
	GammaCorrect bool    `yaml:"gamma_correct"`
	// Brightness is a dim level 1..127 or 255 for full; 0 means unset.
	Brightness   int     `yaml:"brightness"`
}

type SceneConfig struct {
	Name   string             `yaml:"name"`
	Frames int                `yaml:"frames"`
	FPS    int                `yaml:"fps"`
	Seed   int64              `yaml:"seed"`
	Bodies int                `yaml:"bodies,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

type DisplayConfig struct {
	Reflect bool   `yaml:"reflect"`
	Mode    string `yaml:"mode"`
}

func DefaultConfig() *Config {
	return &Config{
		Matrix: MatrixConfig{
			Columns: DefaultColumns,
			Rows:    DefaultRows,
			Wiring:  DefaultWiring,
		},
		Color: ColorConfig{
			Format:       DefaultFormat,
			Gamma:        rgb.DefaultGamma,
			BitDepth:     DefaultBitDepth,
			GammaCorrect: true,
			Brightness:   neopix.FullBrightness,
		},
		Scene: SceneConfig{
			Name:   DefaultScene,
			Frames: DefaultFrames,
			FPS:    DefaultFPS,
			Seed:   1,
		},
		Display: DisplayConfig{
			Reflect: true,
			Mode:    engine.ModeBuffer.String(),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Scene.Params = maps.Clone(c.Scene.Params)
	return &out
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Matrix.Columns <= 0 || c.Matrix.Rows <= 0 {
		return fmt.Errorf("%w: matrix %dx%d", ErrInvalid, c.Matrix.Columns, c.Matrix.Rows)
	}
	if _, err := neopix.ParseWiring(c.Matrix.Wiring); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := geometry.ParseFormat(c.Color.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !(c.Color.Gamma > 0) {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalid, c.Color.Gamma)
	}
	if c.Color.BitDepth < 1 || c.Color.BitDepth > 16 {
		return fmt.Errorf("%w: bit depth %d outside 1..16", ErrInvalid, c.Color.BitDepth)
	}
	if !neopix.ValidBrightness(c.Color.Brightness) {
		return fmt.Errorf("%w: brightness %d, want 0..%d or %d", ErrInvalid, c.Color.Brightness, neopix.MaxDimLevel, neopix.FullBrightness)
	}
	if !slices.Contains(scene.Names(), c.Scene.Name) {
		return fmt.Errorf("%w: %w: %s", ErrInvalid, scene.ErrUnknownScene, c.Scene.Name)
	}
	if c.Scene.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalid, c.Scene.Frames)
	}
	if c.Scene.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.Scene.FPS)
	}
	if c.Scene.Bodies < 0 {
		return fmt.Errorf("%w: bodies must not be negative, got %d", ErrInvalid, c.Scene.Bodies)
	}
	if _, err := engine.ParseMode(c.Display.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Strip returns the strip settings. A brightness of zero is treated as
// unset, i.e. full brightness.
func (c *Config) Strip() (neopix.Config, error) {
	w, err := neopix.ParseWiring(c.Matrix.Wiring)
	if err != nil {
		return neopix.Config{}, err
	}
	return neopix.Config{
		Columns:      c.Matrix.Columns,
		Rows:         c.Matrix.Rows,
		Wiring:       w,
		GammaCorrect: c.Color.GammaCorrect,
		Gamma:        c.Color.Gamma,
		BitDepth:     c.Color.BitDepth,
		Brightness:   c.Color.Brightness,
	}, nil
}

func (c *Config) SceneSettings() scene.Settings {
	return scene.Settings{
		Columns: c.Matrix.Columns,
		Rows:    c.Matrix.Rows,
		Bodies:  c.Scene.Bodies,
		Seed:    c.Scene.Seed,
	}
}

func (c *Config) Engine() (engine.Config, error) {
	mode, err := engine.ParseMode(c.Display.Mode)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Frames:  c.Scene.Frames,
		Mode:    mode,
		Reflect: c.Display.Reflect,
	}, nil
}

// ApplyParams sets the configured scene parameters in sorted order.
func (c *Config) ApplyParams(sc scene.Scene) error {
	for _, name := range sortedKeys(c.Scene.Params) {
		if err := sc.SetParam(name, c.Scene.Params[name]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}
