package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/batch"
	"github.com/san-kum/fxmath/internal/fxmath"
)

const (
	DefaultFormat     = "M"
	DefaultIterations = 16
	DefaultBase       = 3.0
	DefaultThreshold  = 0.1
	DefaultWorkers    = 4
	DefaultSteps      = 512
)

type Config struct {
	Format     string      `yaml:"format"`
	Iterations int         `yaml:"iterations"`
	Base       float64     `yaml:"base"`
	Input      float64     `yaml:"input"`
	Threshold  float64     `yaml:"threshold"`
	Workers    int         `yaml:"workers"`
	Sweep      SweepConfig `yaml:"sweep"`
}

type SweepConfig struct {
	Op       string  `yaml:"op"`
	Strategy string  `yaml:"strategy"`
	Start    float64 `yaml:"start"`
	Limit    float64 `yaml:"limit"`
	Steps    int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:     DefaultFormat,
		Iterations: DefaultIterations,
		Base:       DefaultBase,
		Input:      0.5,
		Threshold:  DefaultThreshold,
		Workers:    DefaultWorkers,
		Sweep: SweepConfig{
			Op:       "sin",
			Strategy: "lut",
			Start:    -2 * math.Pi,
			Limit:    2 * math.Pi,
			Steps:    DefaultSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BatchOptions returns the batch settings of the config.
func (c *Config) BatchOptions() batch.Options {
	return batch.Options{
		Format:     c.Format,
		Iterations: c.Iterations,
		Base:       c.Base,
		Threshold:  c.Threshold,
		Workers:    c.Workers,
	}
}

// SweepConfig resolves the sweep section against the function registry.
func (c *Config) SweepConfig() (analysis.SweepConfig, error) {
	op, err := fxmath.ParseOp(c.Sweep.Op)
	if err != nil {
		return analysis.SweepConfig{}, err
	}
	s, err := fxmath.ParseStrategy(c.Sweep.Strategy)
	if err != nil {
		return analysis.SweepConfig{}, err
	}
	if !op.Supports(s) {
		return analysis.SweepConfig{}, fmt.Errorf("%w: %s", fxmath.ErrUnsupported, fxmath.Name(op, s))
	}
	return analysis.SweepConfig{
		Format:     c.Format,
		Op:         op,
		Strategy:   s,
		Iterations: c.Iterations,
		Base:       c.Base,
		Start:      c.Sweep.Start,
		Limit:      c.Sweep.Limit,
		Steps:      c.Sweep.Steps,
	}, nil
}
