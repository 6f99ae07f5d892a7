package fxmath

import (
	"math"

	"github.com/san-kum/fxmath/internal/cordic"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/reduce"
	"github.com/san-kum/fxmath/internal/tables"
)

// rationalB is the coefficient of atan(t) ≈ (B·t + t²)/(1 + 2B·t + t²)·π/2.
var rationalB = fixed.WorkFromFloat(0.596227)

func absRaw(raw int64) uint64 {
	if raw < 0 {
		return uint64(-raw)
	}
	return uint64(raw)
}

// absWork returns |raw·2^-frac| in the working format.
func absWork(raw int64, frac uint) int64 {
	t, _ := fixed.Rescale(raw, frac, fixed.WorkFrac)
	if t < 0 {
		return -t
	}
	return t
}

func fixedFloat(raw int64, frac uint) float64 {
	return math.Ldexp(float64(raw), -int(frac))
}

// aboveOne reports |raw·2^-frac| > 1.
func aboveOne(raw int64, frac uint) bool {
	return frac < 63 && absRaw(raw) > uint64(1)<<frac
}

// atanWork evaluates atan at raw·2^-frac with core, which handles [0, 1].
// Larger arguments use atan(x) = π/2 − atan(1/x).
func atanWork(raw int64, frac uint, core func(t int64) int64) int64 {
	var z int64
	if aboveOne(raw, frac) {
		z = tables.Work(tables.HalfPi) - core(reduce.Reciprocal(raw, frac))
	} else {
		z = core(absWork(raw, frac))
	}
	if raw < 0 {
		return -z
	}
	return z
}

func atanRational(t int64) int64 {
	bt := fixed.MulWork(rationalB, t)
	t2 := fixed.MulWork(t, t)
	q, _ := fixed.DivWork(bt+t2, fixed.WorkOne+2*bt+t2)
	return fixed.MulWork(q, tables.Work(tables.HalfPi))
}

// AtanRational is a low-cost approximation with a maximum error near
// 3e-3 rad.
func AtanRational[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	z := atanWork(x.Raw(), fixed.FracBits[F](), atanRational)
	return fixed.FromWork[F](z).WithOverflow(x.Overflow())
}

func AtanCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	z := atanWork(x.Raw(), fixed.FracBits[F](), func(t int64) int64 {
		return cordic.Atan2(t, fixed.WorkOne, n)
	})
	return fixed.FromWork[F](z).WithOverflow(x.Overflow())
}

// sqrtWork returns √v for a non-negative working value.
func sqrtWork(v int64, n int) int64 {
	if v <= 0 {
		return 0
	}
	m, e := reduce.NormalizeEven(uint64(v), fixed.WorkFrac)
	r := cordic.Sqrt(m, n)
	if e >= 0 {
		s, _ := fixed.ShlSat(r, uint(e))
		return s
	}
	return fixed.RoundShift(r, uint(-e))
}

// asinWork returns asin in the working format as atan2(x, √(1−x²)).
func asinWork(op string, raw int64, frac uint, n int) (int64, error) {
	if aboveOne(raw, frac) {
		return 0, fixed.NewDomainError(op, fixedFloat(raw, frac), "outside [-1, 1]")
	}
	t := absWork(raw, frac)
	c := sqrtWork(fixed.WorkOne-fixed.MulWork(t, t), n)
	z := cordic.Atan2(t, c, n)
	if raw < 0 {
		z = -z
	}
	return z, nil
}

func AsinCORDIC[F fixed.Format](x fixed.Fixed[F], n int) (fixed.Fixed[F], error) {
	z, err := asinWork("asin", x.Raw(), fixed.FracBits[F](), n)
	if err != nil {
		return fixed.Fixed[F]{}, err
	}
	return fixed.FromWork[F](z).WithOverflow(x.Overflow()), nil
}

// AcosCORDIC returns π/2 − asin(x).
func AcosCORDIC[F fixed.Format](x fixed.Fixed[F], n int) (fixed.Fixed[F], error) {
	z, err := asinWork("acos", x.Raw(), fixed.FracBits[F](), n)
	if err != nil {
		return fixed.Fixed[F]{}, err
	}
	return fixed.FromWork[F](tables.Work(tables.HalfPi) - z).WithOverflow(x.Overflow()), nil
}
