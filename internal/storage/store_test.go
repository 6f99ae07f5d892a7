package storage

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/fxmath"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res, err := analysis.Sweep(analysis.SweepConfig{
		Format:     "M",
		Op:         fxmath.OpLn,
		Strategy:   fxmath.CORDIC,
		Iterations: 16,
		Start:      -1,
		Limit:      4,
		Steps:      41,
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Function != "ln_cordic" {
		t.Errorf("expected function 'ln_cordic', got '%s'", meta.Function)
	}
	if meta.Stats != res.Stats {
		t.Errorf("stats = %+v, want %+v", meta.Stats, res.Stats)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != len(res.Samples) {
		t.Fatalf("expected %d samples, got %d", len(res.Samples), len(samples))
	}
	for i, s := range samples {
		want := res.Samples[i]
		if s.X != want.X || s.Skipped != want.Skipped || s.Overflow != want.Overflow {
			t.Errorf("sample %d = %+v, want %+v", i, s, want)
		}
		if math.IsNaN(want.Err) != math.IsNaN(s.Err) || (!math.IsNaN(s.Err) && s.Err != want.Err) {
			t.Errorf("sample %d error = %v, want %v", i, s.Err, want.Err)
		}
	}

	back, err := st.Result(runID)
	require.NoError(t, err)
	require.Equal(t, fxmath.OpLn, back.Config.Op)
	require.Equal(t, fxmath.CORDIC, back.Config.Strategy)
	require.Equal(t, res.Errors(), back.Errors())
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	require.NoError(t, st.Init())
	for _, op := range []fxmath.Op{fxmath.OpSin, fxmath.OpCos} {
		res, err := analysis.Sweep(analysis.SweepConfig{
			Format: "S", Op: op, Strategy: fxmath.LUT, Iterations: 16,
			Start: 0, Limit: 1, Steps: 8,
		})
		require.NoError(t, err)
		_, err = st.Save(res)
		require.NoError(t, err)
	}

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "sin_lut", runs[0].Function)
	require.Equal(t, "cos_lut", runs[1].Function)
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	require.Error(t, err)
	_, err = st.LoadSamples("nope")
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	r, err := batch.Run(context.Background(), -1, batch.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r))

	var back ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, "Q16_16", back.Format)
	require.Len(t, back.Entries, len(batch.Plan))

	for _, e := range back.Entries {
		if e.Name == "sqrt" {
			require.Nil(t, e.Reference)
			require.NotEmpty(t, e.Error)
			require.True(t, e.Pass)
		}
	}
}

func TestExportReport(t *testing.T) {
	r, err := batch.Run(context.Background(), 0.5, batch.DefaultOptions())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, ExportReport(path, r))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var back ExportData
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, 0.5, back.Input)
	require.Equal(t, r.Failing, back.Failing)
	require.Len(t, back.Entries, len(batch.Plan))

	require.Error(t, ExportReport(filepath.Join(t.TempDir(), "missing", "report.json"), r))
}
