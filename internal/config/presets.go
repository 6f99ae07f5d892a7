package config

import (
	"math"
	"sort"
)

func sweep(format, op, strategy string, n int, start, limit float64) *Config {
	cfg := DefaultConfig()
	cfg.Format = format
	cfg.Iterations = n
	cfg.Sweep = SweepConfig{Op: op, Strategy: strategy, Start: start, Limit: limit, Steps: DefaultSteps}
	return cfg
}

// Presets are the standard error-plot setups, keyed by function.
var Presets = map[string]map[string]*Config{
	"sin": {
		"lut":         sweep("M", "sin", "lut", 16, -2*math.Pi, 2*math.Pi),
		"taylor":      sweep("M", "sin", "taylor", 16, -2*math.Pi, 2*math.Pi),
		"cordic":      sweep("M", "sin", "cordic", 16, -2*math.Pi, 2*math.Pi),
		"cordic_fine": sweep("XL", "sin", "cordic", 40, -2*math.Pi, 2*math.Pi),
	},
	"cos": {
		"lut":    sweep("M", "cos", "lut", 16, -2*math.Pi, 2*math.Pi),
		"cordic": sweep("M", "cos", "cordic", 16, -2*math.Pi, 2*math.Pi),
	},
	"tan": {
		"taylor": sweep("M", "tan", "taylor", 16, -1.5, 1.5),
	},
	"atan": {
		"rational": sweep("M", "atan", "rational", 16, -10, 10),
		"cordic":   sweep("M", "atan", "cordic", 16, -10, 10),
	},
	"asin": {
		"cordic": sweep("M", "asin", "cordic", 16, -1, 1),
	},
	"acos": {
		"cordic": sweep("M", "acos", "cordic", 16, -1, 1),
	},
	"sqrt": {
		"cordic": sweep("M", "sqrt", "cordic", 16, 0, 100),
		"small":  sweep("S", "sqrt", "cordic", 24, 0, 2),
	},
	"exp": {
		"taylor": sweep("M", "exp", "taylor", 16, -8, 8),
		"cordic": sweep("M", "exp", "cordic", 16, -8, 8),
	},
	"ln": {
		"lut":    sweep("M", "ln", "lut", 16, 0.01, 100),
		"cordic": sweep("M", "ln", "cordic", 16, 0.01, 100),
	},
	"log2": {
		"lut":    sweep("M", "log2", "lut", 16, 0.01, 100),
		"cordic": sweep("M", "log2", "cordic", 16, 0.01, 100),
	},
	"pow": {
		"lut": sweep("M", "pow", "lut", 16, -4, 4),
	},
}

func GetPreset(op, preset string) *Config {
	opPresets, ok := Presets[op]
	if !ok {
		return nil
	}
	cfg, ok := opPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(op string) []string {
	opPresets, ok := Presets[op]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(opPresets))
	for name := range opPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
