package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/fxmath"
)

// SweepConfig describes an accuracy sweep.
type SweepConfig struct {
	Format     string
	Op         fxmath.Op
	Strategy   fxmath.Strategy
	Iterations int
	Base       float64 // log base, or pow base
	Start      float64
	Limit      float64
	Steps      int
}

// Sample is one evaluated point of a sweep.
type Sample struct {
	X        float64 // quantized input
	Got      float64
	Want     float64
	Err      float64
	Overflow bool
	Skipped  bool // outside the domain of both implementations
}

// Stats summarizes the absolute error of the counted samples.
type Stats struct {
	N        int
	Skipped  int
	Failures int // fixed-point and reference disagree on the domain
	MaxAbs   float64
	MeanAbs  float64
	RMS      float64
	MaxULP   float64
	WorstX   float64
}

type SweepResult struct {
	Config  SweepConfig
	Samples []Sample
	Stats   Stats
}

func (c SweepConfig) Validate() error {
	if c.Steps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", c.Steps)
	}
	if !(c.Limit > c.Start) {
		return fmt.Errorf("sweep range [%g, %g] is empty", c.Start, c.Limit)
	}
	if !c.Op.Supports(c.Strategy) {
		return fmt.Errorf("%w: %s", fxmath.ErrUnsupported, fxmath.Name(c.Op, c.Strategy))
	}
	return nil
}

// Sweep evaluates the configured function at Steps evenly spaced points.
func Sweep(c SweepConfig) (*SweepResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ev, err := fxmath.ForFormat(c.Format)
	if err != nil {
		return nil, err
	}
	ref := Reference(c.Op)

	samples := make([]Sample, c.Steps)
	step := (c.Limit - c.Start) / float64(c.Steps-1)
	parallelFor(c.Steps, 64, func(start, end int) {
		for i := start; i < end; i++ {
			samples[i] = evaluate(ev, ref, c, c.Start+step*float64(i))
		}
	})

	return &SweepResult{Config: c, Samples: samples, Stats: summarize(samples, ev.Info.ULP)}, nil
}

func evaluate(ev fxmath.Evaluator, ref func(x, y float64) float64, c SweepConfig, x float64) Sample {
	a, b := x, c.Base
	if c.Op == fxmath.OpPow {
		a, b = c.Base, x
	}
	res, err := ev.Eval(c.Op, c.Strategy, a, b, c.Iterations)
	s := Sample{X: res.Input, Got: res.Value, Overflow: res.Overflow}
	y := res.Second
	if c.Op == fxmath.OpPow {
		s.X, y = res.Second, res.Input
	}
	s.Want = ref(s.X, y)

	undefined := math.IsNaN(s.Want) || math.IsInf(s.Want, 0)
	switch {
	case err != nil && undefined && errors.Is(err, fixed.ErrDomain):
		s.Skipped = true
	case err != nil || undefined:
		s.Err = math.NaN()
	default:
		s.Err = s.Got - s.Want
	}
	return s
}

func summarize(samples []Sample, ulp float64) Stats {
	var st Stats
	var sum, sumSq float64
	for _, s := range samples {
		switch {
		case s.Skipped:
			st.Skipped++
			continue
		case math.IsNaN(s.Err):
			st.Failures++
			continue
		case s.Overflow:
			st.Skipped++
			continue
		}
		a := math.Abs(s.Err)
		st.N++
		sum += a
		sumSq += a * a
		if a > st.MaxAbs || st.N == 1 {
			st.MaxAbs, st.WorstX = a, s.X
		}
	}
	if st.N > 0 {
		st.MeanAbs = sum / float64(st.N)
		st.RMS = math.Sqrt(sumSq / float64(st.N))
		st.MaxULP = st.MaxAbs / ulp
	}
	return st
}

// Errors returns the error signal of the counted samples, with skipped
// points as zero so the signal stays evenly spaced.
func (r *SweepResult) Errors() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		if !s.Skipped && !s.Overflow && !math.IsNaN(s.Err) {
			out[i] = s.Err
		}
	}
	return out
}
