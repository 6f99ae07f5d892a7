package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/fxmath/internal/fxmath"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != "M" {
		t.Errorf("expected format M, got %s", cfg.Format)
	}
	if cfg.Iterations <= 0 {
		t.Error("iterations should be positive")
	}
	if cfg.Threshold <= 0 {
		t.Error("threshold should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sin", "cordic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Sweep.Strategy != "cordic" {
		t.Errorf("expected strategy cordic, got %s", cfg.Sweep.Strategy)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("sin", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "lut")
	if cfg != nil {
		t.Error("expected nil for nonexistent function")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sin")
	if len(presets) == 0 {
		t.Error("expected presets for sin")
	}
	if presets[0] != "cordic" {
		t.Errorf("expected sorted names, got %v", presets)
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent function")
	}
}

func TestPresetsResolve(t *testing.T) {
	for op, presets := range Presets {
		for name, cfg := range presets {
			sc, err := cfg.SweepConfig()
			if err != nil {
				t.Errorf("%s/%s: %v", op, name, err)
				continue
			}
			if err := sc.Validate(); err != nil {
				t.Errorf("%s/%s: %v", op, name, err)
			}
			if sc.Op.String() != op {
				t.Errorf("%s/%s resolves to %s", op, name, sc.Op)
			}
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fxmath.yaml")
	cfg := GetPreset("atan", "rational")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Sweep != cfg.Sweep || got.Format != cfg.Format || got.Iterations != cfg.Iterations {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}

	sc, err := got.SweepConfig()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Strategy != fxmath.Rational {
		t.Errorf("strategy = %v, want rational", sc.Strategy)
	}
}

func TestSweepConfigRejectsBadNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sweep.Op = "cbrt"
	if _, err := cfg.SweepConfig(); err == nil {
		t.Error("expected error for unknown op")
	}

	cfg = DefaultConfig()
	cfg.Sweep.Strategy = "lut"
	cfg.Sweep.Op = "sqrt"
	if _, err := cfg.SweepConfig(); err == nil {
		t.Error("expected error for unsupported strategy")
	}
}

func TestBatchOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.BatchOptions()
	if opts.Format != cfg.Format || opts.Base != cfg.Base || opts.Workers != cfg.Workers {
		t.Errorf("BatchOptions() = %+v", opts)
	}
}
