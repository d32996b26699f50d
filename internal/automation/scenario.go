// Package automation runs scenes without a terminal: scripted scenarios
// read from YAML, parameter sweeps and seed ensembles.
package automation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neomatrix/internal/config"
	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/metrics"
)

var ErrEmptyScenario = errors.New("automation: scenario has no steps")

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run of a scenario. Zero fields keep the base configuration.
type Step struct {
	Label  string             `yaml:"label"`
	Scene  string             `yaml:"scene"`
	Preset string             `yaml:"preset"`
	Frames int                `yaml:"frames"`
	Seed   int64              `yaml:"seed"`
	Bodies int                `yaml:"bodies"`
	Params map[string]float64 `yaml:"params"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Config layers the step over base: the preset replaces the scene
// section, then every non-zero field of the step applies.
func (s Step) Config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Scene != "" && s.Scene != cfg.Scene.Name {
		cfg.Scene.Name = s.Scene
		cfg.Scene.Params = nil
		cfg.Scene.Bodies = 0
	}
	if s.Preset != "" {
		p := config.GetPreset(cfg.Scene.Name, s.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %s for %s", config.ErrInvalid, s.Preset, cfg.Scene.Name)
		}
		cfg.Scene = p.Scene
	}
	if s.Frames != 0 {
		cfg.Scene.Frames = s.Frames
	}
	if s.Seed != 0 {
		cfg.Scene.Seed = s.Seed
	}
	if s.Bodies != 0 {
		cfg.Scene.Bodies = s.Bodies
	}
	if len(s.Params) > 0 {
		if cfg.Scene.Params == nil {
			cfg.Scene.Params = make(map[string]float64, len(s.Params))
		}
		maps.Copy(cfg.Scene.Params, s.Params)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Step   int
	Label  string
	Config *config.Config
	Result *engine.Result
	Params map[string]float64
}

// RunScenario runs every step in order and stops at the first failure.
// Outcomes of the steps that completed are returned with the error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config) ([]Outcome, error) {
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	log := engine.Logger().With("scenario", scenario.Name)
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config(base)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		label := step.Label
		if label == "" {
			label = fmt.Sprintf("%s-%d", cfg.Scene.Name, i+1)
		}
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "label", label)

		result, params, err := run(ctx, cfg)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}
		outcomes = append(outcomes, Outcome{Step: i + 1, Label: label, Config: cfg, Result: result, Params: params})
	}
	return outcomes, nil
}

// run builds cfg with the standard metrics and runs it to completion. It
// returns the scene parameters in effect.
func run(ctx context.Context, cfg *config.Config) (*engine.Result, map[string]float64, error) {
	runCfg, err := cfg.Engine()
	if err != nil {
		return nil, nil, err
	}
	e, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	for _, m := range metrics.Standard() {
		e.AddMetric(m)
	}
	result, err := e.Run(ctx, runCfg)
	if err != nil {
		return nil, nil, err
	}
	return result, e.Scene().GetParams(), nil
}
