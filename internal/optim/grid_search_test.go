package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/fxmath/internal/analysis"
	"github.com/san-kum/fxmath/internal/fxmath"
)

func sinSweep() analysis.SweepConfig {
	return analysis.SweepConfig{
		Op: fxmath.OpSin, Strategy: fxmath.CORDIC, Iterations: 16,
		Start: -3, Limit: 3, Steps: 64,
	}
}

func TestSearchFindsCheapest(t *testing.T) {
	g := NewGridSearch([]string{"XL", "M"}, []int{4, 8, 12, 16, 24})
	best, all, err := g.Search(context.Background(), sinSweep(), 1e-3)
	require.NoError(t, err)
	require.Len(t, all, 10)
	require.LessOrEqual(t, best.Stats.MaxAbs, 1e-3)

	for _, c := range all {
		if c.OK {
			require.False(t, c.cheaper(*best), "%+v is cheaper than %+v", c, *best)
		}
	}
	require.Equal(t, "M", best.Format)
}

func TestSearchFixedStrategyIgnoresIterations(t *testing.T) {
	c := sinSweep()
	c.Strategy = fxmath.LUT
	_, all, err := NewGridSearch([]string{"M"}, []int{4, 8, 12}).Search(context.Background(), c, 1)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 16, all[0].Iterations)
}

func TestSearchNoCandidate(t *testing.T) {
	_, _, err := NewGridSearch([]string{"XS"}, []int{2}).Search(context.Background(), sinSweep(), 1e-12)
	require.ErrorIs(t, err, ErrNoCandidate)
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewGridSearch([]string{"M"}, []int{8}).Search(ctx, sinSweep(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearchUnknownFormat(t *testing.T) {
	_, _, err := NewGridSearch([]string{"Q99_1"}, []int{8}).Search(context.Background(), sinSweep(), 1)
	require.Error(t, err)
}
