package storage

import (
	"encoding/json"
	"errors"
	"io"
)

// ExportData is a whole run in one JSON document.
type ExportData struct {
	Metadata RunMetadata  `json:"metadata"`
	Samples  []BodySample `json:"samples"`
	Frame    []Pixel      `json:"frame,omitempty"`
}

// ExportJSON writes a stored run as indented JSON. A run without a stored
// frame is exported without one.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	frame, err := s.LoadFrame(runID)
	if err != nil && !errors.Is(err, ErrNoFrame) {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Metadata: *meta, Samples: samples, Frame: frame})
}
