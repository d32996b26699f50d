package automation

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/neomatrix/internal/config"
	"github.com/san-kum/neomatrix/internal/engine"
)

// Sweep runs a scene once per value of Param, evenly spaced from Min to Max.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

func (s Sweep) Values() ([]float64, error) {
	switch {
	case s.Param == "":
		return nil, fmt.Errorf("%w: sweep without a parameter", config.ErrInvalid)
	case s.Steps < 1:
		return nil, fmt.Errorf("%w: sweep steps %d", config.ErrInvalid, s.Steps)
	case s.Steps == 1:
		return []float64{s.Min}, nil
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	values := make([]float64, s.Steps)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	values[len(values)-1] = s.Max
	return values, nil
}

type SweepResult struct {
	Value   float64
	Frames  int
	Metrics map[string]float64
}

// RunSweep runs the sweep on up to workers engines at once. Results keep
// the order of Values.
func RunSweep(ctx context.Context, base *config.Config, sw Sweep, workers int) ([]SweepResult, error) {
	values, err := sw.Values()
	if err != nil {
		return nil, err
	}
	probe, err := base.Build()
	if err != nil {
		return nil, err
	}
	if _, ok := probe.Scene().GetParams()[sw.Param]; !ok {
		return nil, fmt.Errorf("%w: %s has no param %s", config.ErrInvalid, base.Scene.Name, sw.Param)
	}

	results := make([]SweepResult, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			cfg := base.Clone()
			if cfg.Scene.Params == nil {
				cfg.Scene.Params = make(map[string]float64, 1)
			}
			cfg.Scene.Params[sw.Param] = v

			res, _, err := run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("%s=%g: %w", sw.Param, v, err)
			}
			results[i] = SweepResult{Value: v, Frames: res.Frames, Metrics: res.Metrics}
			engine.Logger().Debug("sweep point done", "param", sw.Param, "value", v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Best picks the result with the lowest (or highest) value of metric.
func Best(results []SweepResult, metric string, minimize bool) (SweepResult, bool) {
	var best SweepResult
	bestVal := math.Inf(1)
	if !minimize {
		bestVal = math.Inf(-1)
	}
	found := false
	for _, r := range results {
		v, ok := r.Metrics[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		if (minimize && v < bestVal) || (!minimize && v > bestVal) {
			best, bestVal, found = r, v, true
		}
	}
	return best, found
}

// RunEnsemble repeats a run with seeds seedStart, seedStart+1, ... on up
// to workers engines at once.
func RunEnsemble(ctx context.Context, base *config.Config, runs int, seedStart int64, workers int) ([]*engine.Result, error) {
	if runs < 1 {
		return nil, fmt.Errorf("%w: ensemble runs %d", config.ErrInvalid, runs)
	}
	results := make([]*engine.Result, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			cfg := base.Clone()
			cfg.Scene.Seed = seedStart + int64(i)
			res, _, err := run(ctx, cfg)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfg.Scene.Seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary describes one metric across runs. StdDev is the sample standard
// deviation, zero for a single run.
type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Summarize(results []*engine.Result) map[string]Summary {
	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}
	out := make(map[string]Summary, len(values))
	for name, vs := range values {
		s := Summary{Min: vs[0], Max: vs[0]}
		for _, v := range vs {
			s.Min, s.Max = min(s.Min, v), max(s.Max, v)
		}
		if len(vs) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(vs, nil)
		} else {
			s.Mean = vs[0]
		}
		out[name] = s
	}
	return out
}
