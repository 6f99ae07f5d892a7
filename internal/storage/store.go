// Package storage keeps sweep runs on disk: metadata.json plus one CSV
// row per sample.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/fxmath"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string         `json:"id"`
	Function   string         `json:"function"`
	Format     string         `json:"format"`
	Timestamp  time.Time      `json:"timestamp"`
	Iterations int            `json:"iterations"`
	Base       float64        `json:"base"`
	Start      float64        `json:"start"`
	Limit      float64        `json:"limit"`
	Steps      int            `json:"steps"`
	Stats      analysis.Stats `json:"stats"`
}

var header = []string{"x", "result", "reference", "error", "overflow", "skipped"}

// Save writes a sweep under a new run directory and returns its id.
func (s *Store) Save(res *analysis.SweepResult) (string, error) {
	c := res.Config
	name := fxmath.Name(c.Op, c.Strategy)
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", name, c.Format, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Function:   name,
		Format:     c.Format,
		Timestamp:  now,
		Iterations: c.Iterations,
		Base:       c.Base,
		Start:      c.Start,
		Limit:      c.Limit,
		Steps:      c.Steps,
		Stats:      res.Stats,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "metadata.json"), data, 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "errors.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, sm := range res.Samples {
		row := []string{
			formatFloat(sm.X),
			formatFloat(sm.Got),
			formatFloat(sm.Want),
			formatFloat(sm.Err),
			strconv.FormatBool(sm.Overflow),
			strconv.FormatBool(sm.Skipped),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]analysis.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "errors.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []analysis.Sample{}, nil
	}

	samples := make([]analysis.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		var vals [4]float64
		for j := range vals {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("errors.csv row %d: %w", i+2, err)
			}
			vals[j] = v
		}
		ovf, err := strconv.ParseBool(rec[4])
		if err != nil {
			return nil, fmt.Errorf("errors.csv row %d: %w", i+2, err)
		}
		skip, err := strconv.ParseBool(rec[5])
		if err != nil {
			return nil, fmt.Errorf("errors.csv row %d: %w", i+2, err)
		}
		samples = append(samples, analysis.Sample{
			X: vals[0], Got: vals[1], Want: vals[2], Err: vals[3],
			Overflow: ovf, Skipped: skip,
		})
	}
	return samples, nil
}

// Result rebuilds a stored sweep.
func (s *Store) Result(runID string) (*analysis.SweepResult, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	op, strategy, err := fxmath.ParseName(meta.Function)
	if err != nil {
		return nil, err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &analysis.SweepResult{
		Config: analysis.SweepConfig{
			Format:     meta.Format,
			Op:         op,
			Strategy:   strategy,
			Iterations: meta.Iterations,
			Base:       meta.Base,
			Start:      meta.Start,
			Limit:      meta.Limit,
			Steps:      meta.Steps,
		},
		Samples: samples,
		Stats:   meta.Stats,
	}, nil
}
