package neopix

import (
	"fmt"

	"github.com/san-kum/neomatrix/internal/rgb"
)

const (
	// FullBrightness leaves colors passed to SetAll unchanged.
	FullBrightness = 255
	// MaxDimLevel is the brightest level rgb.Dim distinguishes.
	MaxDimLevel = 127
)

// ValidBrightness reports whether b is a strip brightness: 0 (unset),
// a dim level up to MaxDimLevel, or FullBrightness. Levels in between
// would dim exactly like MaxDimLevel.
func ValidBrightness(b int) bool {
	return (b >= 0 && b <= MaxDimLevel) || b == FullBrightness
}

// Config describes a strip. Columns and Rows of zero mean a plain strip
// with no matrix topology.
type Config struct {
	Columns      int
	Rows         int
	Wiring       Wiring
	GammaCorrect bool
	Gamma        float64
	BitDepth     int
	// Brightness dims every write like SetAll does: 1..MaxDimLevel or
	// FullBrightness. Zero means FullBrightness.
	Brightness int
}

// DefaultConfig is an 8-row serpentine panel with gamma 2.2 correction.
func DefaultConfig() Config {
	return Config{
		Columns:      32,
		Rows:         8,
		Wiring:       Serpentine,
		GammaCorrect: true,
		Gamma:        rgb.DefaultGamma,
		BitDepth:     8,
	}
}

// Strip writes colors to a Sink by strip index or matrix cell. When gamma
// correction is on, every color is corrected on its way to the sink.
type Strip struct {
	sink       Sink
	topo       *Topology
	gamma      *rgb.GammaTable
	brightness int
}

// New validates cfg against the sink and builds the topology and gamma
// table once.
func New(sink Sink, cfg Config) (*Strip, error) {
	if sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrConfiguration)
	}
	s := &Strip{sink: sink, brightness: cfg.Brightness}
	if s.brightness == 0 {
		s.brightness = FullBrightness
	}
	if !ValidBrightness(s.brightness) {
		return nil, fmt.Errorf("%w: brightness %d", ErrConfiguration, cfg.Brightness)
	}

	if cfg.Columns != 0 || cfg.Rows != 0 {
		topo, err := NewTopology(cfg.Columns, cfg.Rows, cfg.Wiring)
		if err != nil {
			return nil, err
		}
		if topo.Len() > sink.Len() {
			return nil, fmt.Errorf("%w: matrix needs %d LEDs, sink has %d", ErrConfiguration, topo.Len(), sink.Len())
		}
		s.topo = topo
	}

	if cfg.GammaCorrect {
		bits := cfg.BitDepth
		if bits == 0 {
			bits = 8
		}
		table, err := rgb.NewGammaTable(cfg.Gamma, bits)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		s.gamma = table
	}
	return s, nil
}

func (s *Strip) Len() int                    { return s.sink.Len() }
func (s *Strip) Sink() Sink                  { return s.sink }
func (s *Strip) Topology() *Topology         { return s.topo }
func (s *Strip) GammaTable() *rgb.GammaTable { return s.gamma }

func (s *Strip) Brightness() int { return s.brightness }

func (s *Strip) correct(c rgb.Color) rgb.Color {
	if s.brightness < FullBrightness {
		c = rgb.Dim(c, s.brightness)
	}
	if s.gamma == nil {
		return c
	}
	return s.gamma.Apply(c)
}

// Gamma returns the corrected value for brightness i, or i itself when
// correction is off.
func (s *Strip) Gamma(i int) int {
	if s.gamma == nil {
		return i
	}
	return int(s.gamma.Lookup(i))
}

func (s *Strip) SetStripPixel(index int, c rgb.Color) {
	s.sink.SetPixel(index, s.correct(c))
}

// SetStripPixels sets indices begin, begin+step, ... below end.
func (s *Strip) SetStripPixels(begin, end int, c rgb.Color, step int) {
	if step <= 0 {
		step = 1
	}
	c = s.correct(c)
	for i := begin; i < end; i += step {
		s.sink.SetPixel(i, c)
	}
}

// MatrixIndex returns the LED index of a cell. ok is false outside the
// matrix or when the strip has no topology.
func (s *Strip) MatrixIndex(col, row int) (int, bool) {
	if s.topo == nil {
		return 0, false
	}
	return s.topo.Index(col, row)
}

// SetMatrixPixel sets one cell. Cells outside the matrix are ignored.
func (s *Strip) SetMatrixPixel(col, row int, c rgb.Color) {
	if i, ok := s.MatrixIndex(col, row); ok {
		s.sink.SetPixel(i, s.correct(c))
	}
}

// SetMatrixPixels sets the run of LEDs between two cells in chain order,
// from the first cell up to but excluding the second.
func (s *Strip) SetMatrixPixels(col0, row0, col1, row1 int, c rgb.Color, step int) {
	begin, ok0 := s.MatrixIndex(col0, row0)
	end, ok1 := s.MatrixIndex(col1, row1)
	if !ok0 || !ok1 {
		return
	}
	s.SetStripPixels(begin, end, c, step)
}

// SetAll fills every LED. brightness below FullBrightness dims c with
// rgb.Dim, where 0 is off and 127 is the brightest dimmed level.
func (s *Strip) SetAll(c rgb.Color, brightness int) {
	if brightness < FullBrightness {
		c = rgb.Dim(c, brightness)
	}
	s.sink.Fill(s.correct(c))
}

func (s *Strip) ClearAll() { s.sink.Fill(rgb.Black) }

// Show flushes pending writes to the LEDs.
func (s *Strip) Show() error {
	if err := s.sink.Show(); err != nil {
		return fmt.Errorf("neopix: show: %w", err)
	}
	return nil
}
