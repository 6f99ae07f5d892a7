// Package cordic implements shift-and-add rotation and vectoring in the
// circular and hyperbolic coordinate systems.
package cordic

import (
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/tables"
)

// ClampIterations maps any requested iteration count onto [1, MaxIterations].
func ClampIterations(n int) int {
	return min(max(n, 1), tables.MaxIterations)
}

// State is the (x, y, z) triple, all in the working format. A State is
// created per call and discarded afterwards.
type State struct {
	X, Y, Z int64
}

// Rotate drives z toward zero, rotating (x, y) by the initial z.
func (s *State) Rotate(n int) {
	n = ClampIterations(n)
	for k := 0; k < n; k++ {
		dx, dy, a := s.Y>>k, s.X>>k, tables.Atan(k)
		if s.Z >= 0 {
			s.X, s.Y, s.Z = s.X-dx, s.Y+dy, s.Z-a
		} else {
			s.X, s.Y, s.Z = s.X+dx, s.Y-dy, s.Z+a
		}
	}
}

// Vector drives y toward zero, accumulating atan(y/x) into z. x must be
// positive.
func (s *State) Vector(n int) {
	n = ClampIterations(n)
	for k := 0; k < n; k++ {
		dx, dy, a := s.Y>>k, s.X>>k, tables.Atan(k)
		if s.Y >= 0 {
			s.X, s.Y, s.Z = s.X+dx, s.Y-dy, s.Z+a
		} else {
			s.X, s.Y, s.Z = s.X-dx, s.Y+dy, s.Z-a
		}
	}
}

// RotateHyp is the hyperbolic rotation. Every step, repeats included,
// counts toward n.
func (s *State) RotateHyp(n int) {
	n = ClampIterations(n)
	for i := 0; i < n; i++ {
		k := tables.HypShift(i)
		dx, dy, a := s.Y>>k, s.X>>k, tables.Atanh(k)
		if s.Z >= 0 {
			s.X, s.Y, s.Z = s.X+dx, s.Y+dy, s.Z-a
		} else {
			s.X, s.Y, s.Z = s.X-dx, s.Y-dy, s.Z+a
		}
	}
}

// VectorHyp drives y toward zero, accumulating atanh(y/x) into z.
func (s *State) VectorHyp(n int) {
	n = ClampIterations(n)
	for i := 0; i < n; i++ {
		k := tables.HypShift(i)
		dx, dy, a := s.Y>>k, s.X>>k, tables.Atanh(k)
		if s.Y >= 0 {
			s.X, s.Y, s.Z = s.X-dx, s.Y-dy, s.Z+a
		} else {
			s.X, s.Y, s.Z = s.X+dx, s.Y+dy, s.Z-a
		}
	}
}

func circularGain(v int64, n int) int64 {
	return fixed.MulWork(v, tables.CircularGainInv(ClampIterations(n)))
}

func hyperbolicGain(v int64, n int) int64 {
	return fixed.MulWork(v, tables.HyperbolicGainInv(ClampIterations(n)))
}

// SinCos returns sin r and cos r for |r| ≤ π/2.
func SinCos(r int64, n int) (sin, cos int64) {
	s := State{X: fixed.WorkOne, Z: r}
	s.Rotate(n)
	return circularGain(s.Y, n), circularGain(s.X, n)
}

// Atan2 returns atan(y/x) for x > 0, or x = 0 and y ≠ 0.
func Atan2(y, x int64, n int) int64 {
	s := State{X: x, Y: y}
	s.Vector(n)
	return s.Z
}

// Exp returns e^r for r in [0, ln2].
func Exp(r int64, n int) int64 {
	s := State{X: fixed.WorkOne, Z: r}
	s.RotateHyp(n)
	return hyperbolicGain(s.X+s.Y, n)
}

// SinhCosh returns sinh r and cosh r for |r| ≤ 1.
func SinhCosh(r int64, n int) (sinh, cosh int64) {
	s := State{X: fixed.WorkOne, Z: r}
	s.RotateHyp(n)
	return hyperbolicGain(s.Y, n), hyperbolicGain(s.X, n)
}

// Ln returns ln m for m in [1, 2]. Vectoring from (m+1, m−1) leaves
// z = atanh((m−1)/(m+1)) = ½·ln m.
func Ln(m int64, n int) int64 {
	s := State{X: m + fixed.WorkOne, Y: m - fixed.WorkOne}
	s.VectorHyp(n)
	return 2 * s.Z
}

// Sqrt returns √m for m in [0.25, 1]. Vectoring from (m+¼, m−¼) leaves
// x = K_h·√m.
func Sqrt(m int64, n int) int64 {
	q := fixed.WorkOne / 4
	s := State{X: m + q, Y: m - q}
	s.VectorHyp(n)
	return hyperbolicGain(s.X, n)
}
