// Package batch evaluates the full function plan for one input and
// compares every result with its float64 reference.
package batch

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/fxmath"
)

// Options control a batch run.
type Options struct {
	Format     string
	Iterations int
	Base       float64
	Threshold  float64
	Workers    int
}

func DefaultOptions() Options {
	return Options{
		Format:     "M",
		Iterations: 16,
		Base:       3,
		Threshold:  0.1,
		Workers:    4,
	}
}

// Entry is one evaluated row of the plan.
type Entry struct {
	Index     int
	Name      string
	Value     float64
	Exact     string
	Reference float64
	Diff      float64
	Overflow  bool
	Err       error
	Pass      bool
}

// Report is the ordered result of a batch run.
type Report struct {
	Format  fixed.Info
	Input   float64 // quantized input
	Options Options
	Entries []Entry
	Failing int
}

func (r *Report) Passed() bool { return r.Failing == 0 }

// Run evaluates every entry of Plan at x. Entries are independent and may
// run concurrently; the report keeps Plan order.
func Run(ctx context.Context, x float64, opts Options) (*Report, error) {
	ev, err := fxmath.ForFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(Plan))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	} else {
		g.SetLimit(1)
	}
	for i := range Plan {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries[i] = evaluate(ev, i, x, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{Format: ev.Info, Input: ev.Quantize(x), Options: opts, Entries: entries}
	for _, e := range entries {
		if !e.Pass {
			r.Failing++
		}
	}
	return r, nil
}

// RunInputs runs the plan once per input.
func RunInputs(ctx context.Context, xs []float64, opts Options) ([]*Report, error) {
	reports := make([]*Report, 0, len(xs))
	for _, x := range xs {
		r, err := Run(ctx, x, opts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func evaluate(ev fxmath.Evaluator, i int, x float64, opts Options) Entry {
	spec := Plan[i]
	a, b := x, opts.Base
	if spec.Op == fxmath.OpPow {
		a, b = opts.Base, x
	}

	res, err := ev.Eval(spec.Op, spec.Strategy, a, b, opts.Iterations)
	xq, base := res.Input, res.Second
	if spec.Op == fxmath.OpPow {
		xq, base = res.Second, res.Input
	}

	e := Entry{
		Index:     i,
		Name:      spec.Name,
		Value:     res.Value,
		Exact:     res.Exact,
		Reference: spec.Ref(xq, base),
		Overflow:  res.Overflow,
		Err:       err,
	}
	undefined := math.IsNaN(e.Reference) || math.IsInf(e.Reference, 0)
	switch {
	case err != nil:
		e.Diff = math.NaN()
		e.Pass = errors.Is(err, fixed.ErrDomain) && undefined
	case undefined:
		e.Diff = math.Inf(1)
	default:
		e.Diff = math.Abs(e.Value - e.Reference)
		e.Pass = e.Diff <= opts.Threshold
	}
	return e
}
