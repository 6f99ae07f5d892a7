// Package optim searches format and iteration grids for the cheapest
// configuration that keeps a function within an error tolerance.
package optim

import (
	"context"
	"errors"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/fxmath"
)

var ErrNoCandidate = errors.New("optim: no configuration meets the tolerance")

// Candidate is one evaluated grid point.
type Candidate struct {
	Format     string
	Width      uint
	Iterations int
	Stats      analysis.Stats
	OK         bool
}

// cheaper orders by storage width, then iteration count.
func (c Candidate) cheaper(o Candidate) bool {
	if c.Width != o.Width {
		return c.Width < o.Width
	}
	return c.Iterations < o.Iterations
}

type GridSearch struct {
	formats    []string
	iterations []int
}

func NewGridSearch(formats []string, iterations []int) *GridSearch {
	return &GridSearch{formats: formats, iterations: iterations}
}

// Search sweeps every grid point with the range, op and strategy of base
// and returns the cheapest one whose max error is at most tol, along with
// every evaluated candidate. Iterations only vary for CORDIC.
func (g *GridSearch) Search(ctx context.Context, base analysis.SweepConfig, tol float64) (*Candidate, []Candidate, error) {
	ns := g.iterations
	if base.Strategy != fxmath.CORDIC || len(ns) == 0 {
		ns = []int{base.Iterations}
	}

	var best *Candidate
	all := make([]Candidate, 0, len(g.formats)*len(ns))
	for _, f := range g.formats {
		ev, err := fxmath.ForFormat(f)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range ns {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			c := base
			c.Format, c.Iterations = f, n
			res, err := analysis.Sweep(c)
			if err != nil {
				return nil, nil, err
			}

			cand := Candidate{
				Format:     f,
				Width:      ev.Info.Width,
				Iterations: n,
				Stats:      res.Stats,
				OK:         res.Stats.Failures == 0 && res.Stats.N > 0 && res.Stats.MaxAbs <= tol,
			}
			all = append(all, cand)
			if cand.OK && (best == nil || cand.cheaper(*best)) {
				b := cand
				best = &b
			}
		}
	}
	if best == nil {
		return nil, all, ErrNoCandidate
	}
	return best, all, nil
}
