package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	InfectedOverTime []int `json:"infected_over_time"`
}

// ExportJSON writes a run's metadata together with its infected curve.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, InfectedOverTime: series})
}
