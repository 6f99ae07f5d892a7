package storage

import (
	"io"
	"math"
	"os"

	"github.com/san-kum/fxmath/internal/batch"
)

type ExportEntry struct {
	Name      string   `json:"name"`
	Value     float64  `json:"value"`
	Exact     string   `json:"exact"`
	Reference *float64 `json:"reference"`
	Diff      *float64 `json:"diff"`
	Overflow  bool     `json:"overflow,omitempty"`
	Error     string   `json:"error,omitempty"`
	Pass      bool     `json:"pass"`
}

type ExportData struct {
	Format     string        `json:"format"`
	Input      float64       `json:"input"`
	Iterations int           `json:"iterations"`
	Base       float64       `json:"base"`
	Threshold  float64       `json:"threshold"`
	Failing    int           `json:"failing"`
	Entries    []ExportEntry `json:"entries"`
}

// finite maps NaN and infinities to null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func exportData(r *batch.Report) ExportData {
	data := ExportData{
		Format:     r.Format.Name,
		Input:      r.Input,
		Iterations: r.Options.Iterations,
		Base:       r.Options.Base,
		Threshold:  r.Options.Threshold,
		Failing:    r.Failing,
		Entries:    make([]ExportEntry, len(r.Entries)),
	}
	for i, e := range r.Entries {
		x := ExportEntry{
			Name:      e.Name,
			Value:     e.Value,
			Exact:     e.Exact,
			Reference: finite(e.Reference),
			Diff:      finite(e.Diff),
			Overflow:  e.Overflow,
			Pass:      e.Pass,
		}
		if e.Err != nil {
			x.Error = e.Err.Error()
		}
		data.Entries[i] = x
	}
	return data
}

func WriteReport(w io.Writer, r *batch.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(r))
}

func ExportReport(path string, r *batch.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteReport(file, r)
}
