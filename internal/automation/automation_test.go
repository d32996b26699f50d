package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/neomatrix/internal/config"
	"github.com/san-kum/neomatrix/internal/engine"
)

func smallBase() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Matrix.Columns, cfg.Matrix.Rows = 16, 8
	cfg.Scene.Frames = 30
	return cfg
}

const scenarioYAML = `
name: tour
description: a short tour
steps:
  - scene: bounce
    preset: moon
    frames: 20
  - label: fast-spin
    scene: shapes
    params:
      spin: 0.3
  - scene: orbit
    seed: 42
    bodies: 2
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("tour"))
	g.Expect(sc.Steps).To(HaveLen(3))
	g.Expect(sc.Steps[1].Params).To(HaveKeyWithValue("spin", 0.3))

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	g.Expect(err).To(MatchError(ErrEmptyScenario))

	_, err = LoadScenario(writeScenario(t, "steps: [oops"))
	g.Expect(err).To(HaveOccurred())
}

func TestStepConfig(t *testing.T) {
	g := NewWithT(t)
	base := smallBase()
	base.Scene.Params = map[string]float64{"gravity": 0.2}

	cfg, err := Step{Scene: "orbit", Seed: 9}.Config(base)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Scene.Name).To(Equal("orbit"))
	g.Expect(cfg.Scene.Params).To(BeEmpty())
	g.Expect(cfg.Scene.Seed).To(Equal(int64(9)))
	g.Expect(cfg.Scene.Frames).To(Equal(30))
	g.Expect(cfg.Matrix.Columns).To(Equal(16))

	cfg, err = Step{Params: map[string]float64{"drag": 0.9}}.Config(base)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Scene.Params).To(Equal(map[string]float64{"gravity": 0.2, "drag": 0.9}))
	g.Expect(base.Scene.Params).To(HaveLen(1))

	_, err = Step{Preset: "nope"}.Config(base)
	g.Expect(err).To(MatchError(config.ErrInvalid))

	_, err = Step{Scene: "plasma"}.Config(base)
	g.Expect(err).To(MatchError(config.ErrInvalid))
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())

	outcomes, err := RunScenario(context.Background(), sc, smallBase())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(outcomes).To(HaveLen(3))

	g.Expect(outcomes[0].Label).To(Equal("bounce-1"))
	g.Expect(outcomes[0].Result.Frames).To(Equal(20))
	g.Expect(outcomes[0].Params).To(HaveKeyWithValue("gravity", 0.01))
	g.Expect(outcomes[1].Label).To(Equal("fast-spin"))
	g.Expect(outcomes[1].Params).To(HaveKeyWithValue("spin", 0.3))
	g.Expect(outcomes[2].Result.Samples).To(HaveLen(30 * 2))
	for _, o := range outcomes {
		g.Expect(o.Result.Metrics).To(HaveKey("coverage"))
	}
}

func TestRunScenario_StopsAtFailure(t *testing.T) {
	g := NewWithT(t)
	sc := &Scenario{Steps: []Step{{Scene: "bounce"}, {Scene: "bounce", Params: map[string]float64{"warp": 1}}}}
	outcomes, err := RunScenario(context.Background(), sc, smallBase())
	g.Expect(err).To(MatchError(ContainSubstring("step 2")))
	g.Expect(outcomes).To(HaveLen(1))
}

func TestSweepValues(t *testing.T) {
	g := NewWithT(t)
	v, err := Sweep{Param: "k", Min: 0, Max: 1, Steps: 5}.Values()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))

	v, err = Sweep{Param: "k", Min: 2, Max: 9, Steps: 1}.Values()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(v).To(Equal([]float64{2}))

	_, err = Sweep{Param: "k", Steps: 0}.Values()
	g.Expect(err).To(MatchError(config.ErrInvalid))
	_, err = Sweep{Steps: 3}.Values()
	g.Expect(err).To(MatchError(config.ErrInvalid))
}

func TestRunSweep(t *testing.T) {
	g := NewWithT(t)
	base := smallBase()
	base.Scene.Name = "bounce"

	results, err := RunSweep(context.Background(), base, Sweep{Param: "gravity", Min: 0.01, Max: 0.1, Steps: 4}, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(4))
	g.Expect(results[0].Value).To(Equal(0.01))
	g.Expect(results[3].Value).To(Equal(0.1))
	for _, r := range results {
		g.Expect(r.Frames).To(Equal(30))
		g.Expect(r.Metrics).To(HaveKey("kinetic_energy"))
	}
	g.Expect(base.Scene.Params).To(BeEmpty())

	_, err = RunSweep(context.Background(), base, Sweep{Param: "warp", Min: 0, Max: 1, Steps: 2}, 2)
	g.Expect(err).To(MatchError(config.ErrInvalid))
}

func TestRunSweep_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunSweep(ctx, smallBase(), Sweep{Param: "gravity", Min: 0, Max: 1, Steps: 3}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBest(t *testing.T) {
	results := []SweepResult{
		{Value: 1, Metrics: map[string]float64{"m": 3}},
		{Value: 2, Metrics: map[string]float64{"m": 1}},
		{Value: 3, Metrics: map[string]float64{"other": 0}},
		{Value: 4, Metrics: map[string]float64{"m": 5}},
	}
	tests := []struct {
		name     string
		metric   string
		minimize bool
		want     float64
		found    bool
	}{
		{"min", "m", true, 2, true},
		{"max", "m", false, 4, true},
		{"missing", "nope", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Best(results, tt.metric, tt.minimize)
			if ok != tt.found || got.Value != tt.want {
				t.Errorf("Best = %v, %v; want %v, %v", got.Value, ok, tt.want, tt.found)
			}
		})
	}
}

func TestRunEnsemble(t *testing.T) {
	g := NewWithT(t)
	base := smallBase()
	base.Scene.Name = "wander"

	results, err := RunEnsemble(context.Background(), base, 3, 100, 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))
	g.Expect(results[0].Samples[0].X).NotTo(Equal(results[1].Samples[0].X))

	again, err := RunEnsemble(context.Background(), base, 1, 100, 1)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(again[0].Samples).To(Equal(results[0].Samples))

	_, err = RunEnsemble(context.Background(), base, 0, 1, 1)
	g.Expect(err).To(MatchError(config.ErrInvalid))
}

func TestSummarize(t *testing.T) {
	g := NewWithT(t)
	results := []*engine.Result{
		{Metrics: map[string]float64{"m": 1}},
		{Metrics: map[string]float64{"m": 3}},
	}
	s := Summarize(results)
	g.Expect(s["m"].Mean).To(Equal(2.0))
	g.Expect(s["m"].StdDev).To(BeNumerically("~", 1.4142135623730951, 1e-12))
	g.Expect(s["m"].Min).To(Equal(1.0))
	g.Expect(s["m"].Max).To(Equal(3.0))

	single := Summarize(results[:1])
	g.Expect(single["m"]).To(Equal(Summary{Mean: 1, Min: 1, Max: 1}))
}
