package analysis

import (
	"fmt"

	"github.com/san-kum/fxmath/internal/fxmath"
)

// Point is the error of a sweep at one iteration count.
type Point struct {
	N      int
	MaxAbs float64
	RMS    float64
	MaxULP float64
}

// Convergence repeats the CORDIC sweep for N = 1..maxN.
func Convergence(c SweepConfig, maxN int) ([]Point, error) {
	if !c.Op.Supports(fxmath.CORDIC) {
		return nil, fmt.Errorf("%w: %s has no cordic strategy", fxmath.ErrUnsupported, c.Op)
	}
	c.Strategy = fxmath.CORDIC
	points := make([]Point, 0, maxN)
	for n := 1; n <= maxN; n++ {
		c.Iterations = n
		res, err := Sweep(c)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{N: n, MaxAbs: res.Stats.MaxAbs, RMS: res.Stats.RMS, MaxULP: res.Stats.MaxULP})
	}
	return points, nil
}
