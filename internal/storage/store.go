// Package storage keeps finished runs on disk: one directory per run with
// its metadata, the sampled body trajectories and the final frame.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/neomatrix/internal/engine"
	"github.com/san-kum/neomatrix/internal/neopix"
	"github.com/san-kum/neomatrix/internal/rgb"
)

const (
	metadataFile = "metadata.json"
	bodiesFile   = "bodies.csv"
	frameFile    = "frame.csv"
)

var ErrNoFrame = errors.New("storage: run has no stored frame")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was set up.
type RunInfo struct {
	Scene   string             `json:"scene"`
	Seed    int64              `json:"seed"`
	Columns int                `json:"columns"`
	Rows    int                `json:"rows"`
	Wiring  string             `json:"wiring"`
	Format  string             `json:"format"`
	Mode    string             `json:"mode"`
	Reflect bool               `json:"reflect"`
	Params  map[string]float64 `json:"params,omitempty"`
}

type RunMetadata struct {
	RunInfo
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// BodySample is one row of bodies.csv.
type BodySample struct {
	Frame   int     `csv:"frame"`
	Body    string  `csv:"body"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	VX      float64 `csv:"vx"`
	VY      float64 `csv:"vy"`
	Visible bool    `csv:"visible"`
}

// Pixel is one row of frame.csv. Index is the LED's position on the strip.
type Pixel struct {
	Column int    `csv:"column"`
	Row    int    `csv:"row"`
	Index  int    `csv:"index"`
	R      uint8  `csv:"r"`
	G      uint8  `csv:"g"`
	B      uint8  `csv:"b"`
	Hex    string `csv:"hex"`
}

func (p Pixel) Color() rgb.Color { return rgb.Color{R: p.R, G: p.G, B: p.B} }

// Save writes a run and returns its ID. topo maps the final frame's cells
// to strip indices.
func (s *Store) Save(info RunInfo, result *engine.Result, topo *neopix.Topology) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(info.Scene, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:   info,
		ID:        runID,
		Timestamp: now,
		Frames:    result.Frames,
		Samples:   len(result.Samples),
		Metrics:   result.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	samples := make([]BodySample, len(result.Samples))
	for i, smp := range result.Samples {
		samples[i] = BodySample{
			Frame:   smp.Frame,
			Body:    smp.Body,
			X:       smp.X,
			Y:       smp.Y,
			VX:      smp.VX,
			VY:      smp.VY,
			Visible: smp.Visible,
		}
	}
	if err := writeCSV(filepath.Join(runDir, bodiesFile), &samples); err != nil {
		return "", err
	}

	if len(result.Final) > 0 {
		pixels := Pixels(result.Final, topo)
		if err := writeCSV(filepath.Join(runDir, frameFile), &pixels); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func (s *Store) newRunDir(scene string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", scene, now.Unix())
	runID := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return runID, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

// Pixels flattens a frame grid into rows for frame.csv. Without a topology
// the index is the row-major cell number.
func Pixels(grid [][]rgb.Color, topo *neopix.Topology) []Pixel {
	out := make([]Pixel, 0, len(grid)*len(grid[0]))
	for y, row := range grid {
		for x, c := range row {
			idx := y*len(row) + x
			if topo != nil {
				i, ok := topo.Index(x, y)
				if !ok {
					continue
				}
				idx = i
			}
			out = append(out, Pixel{Column: x, Row: y, Index: idx, R: c.R, G: c.G, B: c.B, Hex: c.Hex()})
		}
	}
	return out
}

// Grid rebuilds a frame grid from stored pixels. Its size is taken from the
// largest column and row present.
func Grid(pixels []Pixel) [][]rgb.Color {
	cols, rows := 0, 0
	for _, p := range pixels {
		cols = max(cols, p.Column+1)
		rows = max(rows, p.Row+1)
	}
	grid := make([][]rgb.Color, rows)
	for y := range grid {
		grid[y] = make([]rgb.Color, cols)
	}
	for _, p := range pixels {
		if p.Column >= 0 && p.Row >= 0 {
			grid[p.Row][p.Column] = p.Color()
		}
	}
	return grid
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]BodySample, error) {
	samples := []BodySample{}
	if err := readCSV(filepath.Join(s.baseDir, runID, bodiesFile), &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

func (s *Store) LoadFrame(runID string) ([]Pixel, error) {
	pixels := []Pixel{}
	err := readCSV(filepath.Join(s.baseDir, runID, frameFile), &pixels)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoFrame, runID)
	}
	if err != nil {
		return nil, err
	}
	return pixels, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return nil
}
