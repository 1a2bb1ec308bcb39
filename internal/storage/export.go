package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the JSON form of a stored run.
type ExportData struct {
	RunMetadata
	Times   []float64   `json:"times"`
	Samples [][]float64 `json:"samples"`
}

func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	samples, times, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{RunMetadata: *meta, Times: times, Samples: samples}, nil
}

// ExportJSON writes a stored run as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	data, err := s.Export(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
