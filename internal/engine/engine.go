// Package engine runs a scene frame by frame: it steps the physics, keeps
// bodies inside the matrix, rasterizes the frame and hands it to the
// display.
package engine

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/san-kum/neomatrix/internal/display"
	"github.com/san-kum/neomatrix/internal/geometry"
	"github.com/san-kum/neomatrix/internal/scene"
)

type Engine struct {
	scene     scene.Scene
	display   *display.Display
	raster    *geometry.Rasterizer
	metrics   []Metric
	observers []Observer

	mode  Mode
	frame int
}

// New wires a scene to a display. The rasterizer must cover the display's
// matrix.
func New(sc scene.Scene, disp *display.Display, r *geometry.Rasterizer) (*Engine, error) {
	topo := disp.Strip().Topology()
	if r.Width() < topo.Columns() || r.Height() < topo.Rows() {
		return nil, fmt.Errorf("%w: %dx%d buffer for a %s matrix",
			ErrInvalidConfig, r.Width(), r.Height(), topo)
	}
	return &Engine{
		scene:     sc,
		display:   disp,
		raster:    r,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Scene() scene.Scene               { return e.scene }
func (e *Engine) Display() *display.Display        { return e.display }
func (e *Engine) Rasterizer() *geometry.Rasterizer { return e.raster }
func (e *Engine) FrameIndex() int                  { return e.frame }

func (e *Engine) SetMode(m Mode) { e.mode = m }
func (e *Engine) Mode() Mode     { return e.mode }

// Step advances one frame and pushes it to the LEDs. Metrics and observers
// are notified before it returns.
func (e *Engine) Step() (Frame, error) {
	if err := e.scene.Step(); err != nil {
		return Frame{}, e.frameError(err)
	}
	bodies := e.scene.Bodies()
	for _, b := range bodies {
		if !b.Mover.Position.IsValid() || !b.Mover.Velocity.IsValid() {
			return Frame{}, e.frameError(fmt.Errorf("%w: %s", ErrInvalidState, b.Name))
		}
	}

	if e.mode == ModeDirect {
		e.display.Clear()
	}
	visible := make([]bool, 0, len(bodies))
	for _, b := range bodies {
		e.display.Track(b.Mover, b.Color)
		vis := !e.display.OutOfMatrix()
		visible = append(visible, vis)
		if vis && e.mode == ModeDirect {
			e.display.UpdateLED()
		}
	}

	e.raster.Fill(0)
	e.scene.Draw(e.raster)
	for i, b := range bodies {
		if !visible[i] {
			continue
		}
		p := cell(b.Mover.Position.X, b.Mover.Position.Y)
		e.raster.SetPixel(p.X, p.Y, e.raster.Encode(b.Color))
	}

	var err error
	if e.mode == ModeDirect {
		err = e.display.Show()
	} else {
		err = e.display.ShowFrame(e.raster.Buffer)
	}
	if err != nil {
		return Frame{}, e.frameError(fmt.Errorf("show: %w", err))
	}

	topo := e.display.Strip().Topology()
	f := Frame{
		Index:   e.frame,
		Bodies:  bodies,
		Visible: visible,
		Buffer:  e.raster.Buffer,
		Columns: topo.Columns(),
		Rows:    topo.Rows(),
	}
	e.frame++

	for _, m := range e.metrics {
		m.Observe(f)
	}
	for _, o := range e.observers {
		o.OnFrame(f)
	}
	return f, nil
}

// Reset rewinds the frame counter and clears the metrics. The scene keeps
// its state.
func (e *Engine) Reset() {
	e.frame = 0
	for _, m := range e.metrics {
		m.Reset()
	}
}

// Metrics reports the current value of every metric.
func (e *Engine) Metrics() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Run steps cfg.Frames frames. Cancelling ctx stops the run between frames;
// the partial result is returned with ctx's error.
func (e *Engine) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := e.validateConfig(cfg); err != nil {
		return nil, err
	}
	every := cfg.SampleEvery
	if every == 0 {
		every = 1
	}

	e.display.Reflect = cfg.Reflect
	e.mode = cfg.Mode
	e.Reset()

	result := &Result{
		Samples: make([]Sample, 0, cfg.Frames/every*len(e.scene.Bodies())),
		Metrics: make(map[string]float64),
	}
	log := Logger().With("scene", e.scene.Name())
	log.Info("run started", "frames", cfg.Frames, "mode", cfg.Mode, "reflect", cfg.Reflect)

	var last Frame
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			log.Warn("run canceled", "frame", i)
			return result, ctx.Err()
		default:
		}

		f, err := e.Step()
		if err != nil {
			log.Error("frame failed", "frame", i, "err", err)
			return result, err
		}
		result.Frames++
		last = f

		if f.Index%every == 0 {
			for j, b := range f.Bodies {
				result.Samples = append(result.Samples, Sample{
					Frame:   f.Index,
					Body:    b.Name,
					X:       b.Mover.Position.X,
					Y:       b.Mover.Position.Y,
					VX:      b.Mover.Velocity.X,
					VY:      b.Mover.Velocity.Y,
					Visible: f.Visible[j],
				})
			}
		}
		log.Debug("frame", "index", f.Index, "bodies", len(f.Bodies))
	}

	result.Final = last.Grid()
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	log.Info("run finished", "frames", result.Frames)
	return result, nil
}

func (e *Engine) validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, cfg.Frames)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidConfig, cfg.SampleEvery)
	}
	if cfg.Mode != ModeBuffer && cfg.Mode != ModeDirect {
		return fmt.Errorf("%w: mode %v", ErrInvalidConfig, cfg.Mode)
	}
	return nil
}

func (e *Engine) frameError(err error) error {
	return &FrameError{Frame: e.frame, Scene: e.scene.Name(), Wrapped: err}
}

// cell rounds a body position to its LED, halves to even, matching
// Display.UpdateLED.
func cell(x, y float64) image.Point {
	return image.Pt(int(math.RoundToEven(x)), int(math.RoundToEven(y)))
}
