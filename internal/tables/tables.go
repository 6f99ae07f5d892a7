// Package tables holds the process-wide constants used by the evaluators.
// Everything is derived once from high-precision decimal arithmetic and is
// read-only afterwards.
package tables

import (
	"math"
	"math/big"
	"sync"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/san-kum/fxmath/internal/fixed"
)

const (
	// Frac is the fractional width of scalar constants.
	Frac = 62

	// WideFrac is the fractional width of the reduction constants.
	WideFrac = 128

	// MaxIterations bounds CORDIC iteration counts.
	MaxIterations = 62

	digits = 64
)

// Const names a scalar constant.
type Const uint8

const (
	Pi Const = iota
	HalfPi
	QuarterPi
	TwoOverPi
	Ln2
	InvLn2
	numConsts
)

var constNames = [numConsts]string{"pi", "pi/2", "pi/4", "2/pi", "ln2", "1/ln2"}

func (c Const) String() string {
	if c < numConsts {
		return constNames[c]
	}
	return "unknown"
}

var (
	once sync.Once

	scalar [numConsts]uint64
	exact  [numConsts]decimal.Decimal
	wide   [numConsts]uint256.Int

	atanTab  [MaxIterations]int64
	atanhTab [MaxIterations + 1]int64
	hypShift [MaxIterations]uint
	circInv  [MaxIterations + 1]int64
	hypInv   [MaxIterations + 1]int64
)

func load() { once.Do(build) }

func build() {
	pi := machinPi()
	ln2 := atanSeries(decimal.New(1, 0).DivRound(decimal.New(3, 0), digits+8), true).Mul(decimal.New(2, 0))
	one := decimal.New(1, 0)

	exact[Pi] = pi
	exact[HalfPi] = pi.Mul(decimal.New(5, -1))
	exact[QuarterPi] = pi.Mul(decimal.New(25, -2))
	exact[TwoOverPi] = decimal.New(2, 0).DivRound(pi, digits+8)
	exact[Ln2] = ln2
	exact[InvLn2] = one.DivRound(ln2, digits+8)

	for c := Const(0); c < numConsts; c++ {
		scalar[c] = quantize(exact[c], Frac).Uint64()
		w, _ := uint256.FromBig(quantize(exact[c], WideFrac))
		wide[c] = *w
	}

	for k := 0; k < MaxIterations; k++ {
		if k == 0 {
			atanTab[k] = Quantize(exact[QuarterPi], fixed.WorkFrac)
			continue
		}
		atanTab[k] = Quantize(atanSeries(pow2(-k), false), fixed.WorkFrac)
	}
	for k := 1; k <= MaxIterations; k++ {
		atanhTab[k] = Quantize(atanSeries(pow2(-k), true), fixed.WorkFrac)
	}

	k, next := uint(1), uint(4)
	for i := 0; i < MaxIterations; k++ {
		hypShift[i] = k
		i++
		if k == next && i < MaxIterations {
			hypShift[i] = k
			i++
			next = 3*next + 1
		}
	}
	buildGains()
}

func buildGains() {
	one := decimal.New(1, 0)
	circ, hyp := one, one
	circInv[0], hypInv[0] = fixed.WorkOne, fixed.WorkOne
	for n := 1; n <= MaxIterations; n++ {
		c := pow2(-2 * (n - 1))
		circ = circ.Mul(one.Add(c)).Round(digits + 8)
		circInv[n] = Quantize(one.DivRound(sqrt(circ), digits+8), fixed.WorkFrac)

		h := pow2(-2 * int(hypShift[n-1]))
		hyp = hyp.Mul(one.Sub(h)).Round(digits + 8)
		hypInv[n] = Quantize(one.DivRound(sqrt(hyp), digits+8), fixed.WorkFrac)
	}
}

func pow2(e int) decimal.Decimal {
	if e >= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), uint(e)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil)
	return decimal.NewFromBigInt(five, int32(e))
}

// machinPi evaluates 16·atan(1/5) − 4·atan(1/239).
func machinPi() decimal.Decimal {
	a := atanSeries(decimal.New(2, -1), false)
	b := atanSeries(decimal.New(1, 0).DivRound(decimal.New(239, 0), digits+8), false)
	return a.Mul(decimal.New(16, 0)).Sub(b.Mul(decimal.New(4, 0)))
}

// atanSeries sums t − t³/3 + t⁵/5 … (or all positive terms for atanh) for |t| < 1.
func atanSeries(t decimal.Decimal, hyperbolic bool) decimal.Decimal {
	prec := int32(digits + 8)
	eps := decimal.New(1, -prec)
	t2 := t.Mul(t).Round(prec)
	sum, term := t, t
	for n := int64(1); ; n++ {
		term = term.Mul(t2).Round(prec)
		if term.Abs().LessThan(eps) {
			break
		}
		q := term.DivRound(decimal.NewFromInt(2*n+1), prec)
		if !hyperbolic && n%2 == 1 {
			sum = sum.Sub(q)
		} else {
			sum = sum.Add(q)
		}
	}
	return sum
}

// sqrt runs Newton's method from the float64 estimate.
func sqrt(a decimal.Decimal) decimal.Decimal {
	prec := int32(digits + 8)
	two := decimal.New(2, 0)
	x := decimal.NewFromFloat(math.Sqrt(a.InexactFloat64()))
	for i := 0; i < 6; i++ {
		x = x.Add(a.DivRound(x, prec)).DivRound(two, prec)
	}
	return x
}

func quantize(d decimal.Decimal, frac uint) *big.Int {
	scale := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), frac), 0)
	return d.Mul(scale).RoundBank(0).BigInt()
}

// Quantize rounds d to a raw value with frac fractional bits, half to even.
func Quantize(d decimal.Decimal, frac uint) int64 {
	return quantize(d, frac).Int64()
}

// Exact returns the decimal value a constant was derived from.
func Exact(c Const) decimal.Decimal {
	load()
	return exact[c]
}

// Scalar returns c with Frac fractional bits.
func Scalar(c Const) uint64 {
	load()
	return scalar[c]
}

// At returns c with frac (≤ Frac) fractional bits, rounded half to even.
func At(c Const, frac uint) int64 {
	load()
	if frac > Frac {
		return int64(scalar[c] << (frac - Frac))
	}
	return int64(fixed.RoundShiftU(scalar[c], Frac-frac))
}

// Work returns c in the working format.
func Work(c Const) int64 {
	return At(c, fixed.WorkFrac)
}

// Wide returns c with WideFrac fractional bits.
func Wide(c Const) uint256.Int {
	load()
	return wide[c]
}

// Atan returns atan(2^-k) in the working format.
func Atan(k int) int64 {
	load()
	return atanTab[k]
}

// Atanh returns atanh(2^-k), k ≥ 1, in the working format.
func Atanh(k uint) int64 {
	load()
	return atanhTab[k]
}

// HypShift returns the shift used by hyperbolic iteration i. Shifts 4, 13,
// 40 (k → 3k+1) appear twice.
func HypShift(i int) uint {
	load()
	return hypShift[i]
}

// CircularGainInv returns 1/K(n) for n circular iterations.
func CircularGainInv(n int) int64 {
	load()
	return circInv[n]
}

// HyperbolicGainInv returns 1/K_h(n) for n hyperbolic iterations.
func HyperbolicGainInv(n int) int64 {
	load()
	return hypInv[n]
}
