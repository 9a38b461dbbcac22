package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/epidemic"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "infected.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunDir returns the directory holding a run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Scenario    int                     `json:"scenario"`
	Timestamp   time.Time               `json:"timestamp"`
	UniformSeed uint64                  `json:"uniform_seed"`
	PoissonSeed uint64                  `json:"poisson_seed"`
	MaxDays     int                     `json:"max_days"`
	Population  config.PopulationConfig `json:"population"`
	Behavior    config.BehaviorConfig   `json:"behavior"`
	Days        int                     `json:"days"`
	TotalCases  int                     `json:"total_cases"`
	Extinct     bool                    `json:"extinct"`
	Metrics     map[string]float64      `json:"metrics"`
}

// Save writes one scenario's metadata and infected curve into a new run
// directory and returns its id.
func (s *Store) Save(cfg *config.Config, scenario int, result *epidemic.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%02d", cfg.Name, now.UnixNano(), scenario)
	runDir := s.RunDir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	uniform, poisson := cfg.ScenarioSeeds(scenario)
	meta := RunMetadata{
		ID:          runID,
		Name:        cfg.Name,
		Scenario:    scenario,
		Timestamp:   now,
		UniformSeed: uniform,
		PoissonSeed: poisson,
		MaxDays:     cfg.Days,
		Population:  cfg.Population,
		Behavior:    cfg.Behavior,
		Days:        result.Days,
		TotalCases:  result.TotalCases,
		Extinct:     result.Extinct,
		Metrics:     result.Metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result.InfectedOverTime); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSeries(path string, series []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"day", "infected"}); err != nil {
		return err
	}
	for i, n := range series {
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.Itoa(n)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
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

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].Scenario < runs[j].Scenario
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

// LoadSeries reads a run's infected curve.
func (s *Store) LoadSeries(runID string) ([]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	if len(records) < 2 {
		return []int{}, nil
	}

	series := make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("run %s: bad infected count %q: %w", runID, record[1], err)
		}
		series = append(series, n)
	}

	return series, nil
}
