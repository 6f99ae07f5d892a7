package fxmath

import (
	"github.com/san-kum/fxmath/internal/cordic"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/lut"
	"github.com/san-kum/fxmath/internal/reduce"
	"github.com/san-kum/fxmath/internal/tables"
	"github.com/san-kum/fxmath/internal/taylor"
)

// lnWork returns ln(u·2^-frac) in the working format. u must be non-zero.
func lnWork(u uint64, frac uint, s Strategy, n int) int64 {
	m, e := reduce.Normalize(u, frac)
	ln2 := tables.Work(tables.Ln2)
	switch s {
	case LUT:
		l2 := lut.Log2(m, lut.BitsFor(frac)) + int64(e)<<fixed.WorkFrac
		return fixed.MulWork(l2, ln2)
	case Taylor:
		return taylor.Ln(m, fixed.WorkFrac) + int64(e)*ln2
	default:
		return cordic.Ln(m, n) + int64(e)*ln2
	}
}

// log2Work returns log2(u·2^-frac) in the working format.
func log2Work(u uint64, frac uint, s Strategy, n int) int64 {
	m, e := reduce.Normalize(u, frac)
	whole := int64(e) << fixed.WorkFrac
	switch s {
	case LUT:
		return lut.Log2(m, lut.BitsFor(frac)) + whole
	case Taylor:
		return fixed.MulWork(taylor.Ln(m, fixed.WorkFrac), tables.Work(tables.InvLn2)) + whole
	default:
		return fixed.MulWork(cordic.Ln(m, n), tables.Work(tables.InvLn2)) + whole
	}
}

func logarithm[F fixed.Format](op string, x fixed.UFixed[F], s Strategy, n int,
	eval func(uint64, uint, Strategy, int) int64) (fixed.Fixed[F], error) {
	if x.IsZero() {
		return fixed.Min[F]().WithOverflow(true), fixed.NewDomainError(op, 0, "logarithm of zero")
	}
	l := eval(x.Raw(), fixed.FracBits[F](), s, n)
	return fixed.FromWork[F](l).WithOverflow(x.Overflow()), nil
}

// LnLUT returns ln x from the log2 table. Zero returns ErrDomain along
// with the saturated minimum.
func LnLUT[F fixed.Format](x fixed.UFixed[F]) (fixed.Fixed[F], error) {
	return logarithm("ln", x, LUT, 0, lnWork)
}

// LnTaylor sums the atanh series of (m−1)/(m+1) after normalization.
func LnTaylor[F fixed.Format](x fixed.UFixed[F]) (fixed.Fixed[F], error) {
	return logarithm("ln", x, Taylor, 0, lnWork)
}

func LnCORDIC[F fixed.Format](x fixed.UFixed[F], n int) (fixed.Fixed[F], error) {
	return logarithm("ln", x, CORDIC, n, lnWork)
}

func Log2LUT[F fixed.Format](x fixed.UFixed[F]) (fixed.Fixed[F], error) {
	return logarithm("log2", x, LUT, 0, log2Work)
}

func Log2Taylor[F fixed.Format](x fixed.UFixed[F]) (fixed.Fixed[F], error) {
	return logarithm("log2", x, Taylor, 0, log2Work)
}

func Log2CORDIC[F fixed.Format](x fixed.UFixed[F], n int) (fixed.Fixed[F], error) {
	return logarithm("log2", x, CORDIC, n, log2Work)
}

// Log returns ln(x)/ln(base) with the logarithms evaluated under s.
func Log[F fixed.Format](x, base fixed.UFixed[F], s Strategy, n int) (fixed.Fixed[F], error) {
	frac := fixed.FracBits[F]()
	if x.IsZero() {
		return fixed.Min[F]().WithOverflow(true), fixed.NewDomainError("log", 0, "logarithm of zero")
	}
	if base.IsZero() {
		return fixed.Fixed[F]{}, fixed.NewDomainError("log", base.Float64(), "non-positive base")
	}
	if base.Raw() == uint64(1)<<frac {
		return fixed.Fixed[F]{}, fixed.NewDomainError("log", 1, "base of one")
	}
	if x.Raw() == uint64(1)<<frac {
		return fixed.Fixed[F]{}.WithOverflow(x.Overflow()), nil
	}
	lb := lnWork(base.Raw(), frac, s, n)
	if lb == 0 {
		return fixed.Fixed[F]{}, fixed.NewDomainError("log", base.Float64(), "base of one")
	}
	lx := lnWork(x.Raw(), frac, s, n)
	q, ovf := fixed.DivShift(lx, lb, frac)
	return fixed.FromRaw[F](q).WithOverflow(ovf || x.Overflow() || base.Overflow()), nil
}

// Pow returns base^x as exp(x·ln|base|). A negative base needs an integer
// exponent; odd exponents negate the result. pow(b, 0) is 1 for every b.
func Pow[F fixed.Format](base, x fixed.Fixed[F], s Strategy, n int) (fixed.Fixed[F], error) {
	frac := fixed.FracBits[F]()
	ovf := base.Overflow() || x.Overflow()
	if x.IsZero() {
		return fixed.One[F]().WithOverflow(ovf), nil
	}
	if base.IsZero() {
		if x.Sign() < 0 {
			return fixed.Max[F]().WithOverflow(true), fixed.NewDomainError("pow", base.Float64(), "zero base with negative exponent")
		}
		return fixed.Fixed[F]{}.WithOverflow(ovf), nil
	}

	neg := false
	if base.Sign() < 0 {
		if !x.IsInteger() {
			return fixed.Fixed[F]{}, fixed.NewDomainError("pow", base.Float64(), "negative base with fractional exponent")
		}
		neg = x.IsOddInteger()
	}

	lb := lnWork(absRaw(base.Raw()), frac, s, n)
	t, tovf := fixed.MulShift(x.Raw(), lb, frac)

	var r fixed.Fixed[F]
	switch {
	case tovf && t > 0:
		r = fixed.Max[F]().WithOverflow(true)
	case tovf:
		r = fixed.Fixed[F]{}
	default:
		var core expCore = expTaylor
		if s == CORDIC {
			core = expCORDIC(n)
		}
		v, k := expWork(t, fixed.WorkFrac, frac, core)
		r = fixed.FromWorkScaled[F](v, k)
	}
	if neg {
		r = r.Neg()
	}
	return r.WithOverflow(ovf), nil
}

// SqrtCORDIC returns √x by hyperbolic vectoring on the mantissa.
func SqrtCORDIC[F fixed.Format](x fixed.UFixed[F], n int) fixed.UFixed[F] {
	if x.IsZero() {
		return x
	}
	m, e := reduce.NormalizeEven(x.Raw(), fixed.FracBits[F]())
	return fixed.UFromWorkScaled[F](cordic.Sqrt(m, n), e).WithOverflow(x.Overflow())
}
