package fxmath

import (
	"math"

	"github.com/san-kum/fxmath/internal/cordic"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/reduce"
	"github.com/san-kum/fxmath/internal/taylor"
)

// expCore evaluates e^r for r in [0, ln2]. bits is the precision the
// scaled result needs.
type expCore func(r int64, bits uint) int64

func expTaylor(r int64, bits uint) int64 { return taylor.Exp(r, bits) }

func expCORDIC(n int) expCore {
	return func(r int64, _ uint) int64 { return cordic.Exp(r, n) }
}

// expWork returns e^x as v·2^k with v in the working format.
func expWork(raw int64, frac, outFrac uint, core expCore) (v int64, k int) {
	s := reduce.Exp2Split(raw, frac)
	bits := int(outFrac) + max(s.K, 0)
	return core(s.R, uint(min(bits, fixed.WorkFrac))), s.K
}

func exponential[F fixed.Format](x fixed.Fixed[F], core expCore) fixed.Fixed[F] {
	frac := fixed.FracBits[F]()
	v, k := expWork(x.Raw(), frac, frac, core)
	return fixed.FromWorkScaled[F](v, k).WithOverflow(x.Overflow())
}

// ExpTaylor saturates when e^x exceeds the format and flushes to zero
// below one ULP.
func ExpTaylor[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	return exponential(x, expTaylor)
}

func ExpCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	return exponential(x, expCORDIC(n))
}

// Hyperbolic rotation converges for |x| up to about 1.118; beyond one the
// hyperbolic functions are assembled from e^|x| and e^-|x|.
func hyperbolicDirect(raw int64, frac uint) bool {
	return !aboveOne(raw, frac)
}

func clampRaw(raw int64) int64 {
	if raw == math.MinInt64 {
		return raw + 1
	}
	return raw
}

// halfExps returns e^|x|/2 and e^-|x|/2 in F.
func halfExps[F fixed.Format](raw int64, n int) (fixed.Fixed[F], fixed.Fixed[F]) {
	frac := fixed.FracBits[F]()
	mag := clampRaw(raw)
	if mag < 0 {
		mag = -mag
	}
	vp, kp := expWork(mag, frac, frac, expCORDIC(n))
	vm, km := expWork(-mag, frac, frac, expCORDIC(n))
	return fixed.FromWorkScaled[F](vp, kp-1), fixed.FromWorkScaled[F](vm, km-1)
}

func SinhCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	frac := fixed.FracBits[F]()
	if hyperbolicDirect(x.Raw(), frac) {
		s, _ := cordic.SinhCosh(absWork(x.Raw(), frac), n)
		if x.Raw() < 0 {
			s = -s
		}
		return fixed.FromWork[F](s).WithOverflow(x.Overflow())
	}
	ep, em := halfExps[F](x.Raw(), n)
	s := ep.Sub(em)
	if x.Raw() < 0 {
		s = s.Neg()
	}
	return s.WithOverflow(x.Overflow())
}

func CoshCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	frac := fixed.FracBits[F]()
	if hyperbolicDirect(x.Raw(), frac) {
		_, c := cordic.SinhCosh(absWork(x.Raw(), frac), n)
		return fixed.FromWork[F](c).WithOverflow(x.Overflow())
	}
	ep, em := halfExps[F](x.Raw(), n)
	return ep.Add(em).WithOverflow(x.Overflow())
}

// TanhCORDIC uses (1 − e^-2|x|)/(1 + e^-2|x|) outside [-1, 1].
func TanhCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	frac := fixed.FracBits[F]()
	var t int64
	if hyperbolicDirect(x.Raw(), frac) {
		s, c := cordic.SinhCosh(absWork(x.Raw(), frac), n)
		t, _ = fixed.DivWork(s, c)
	} else {
		mag := clampRaw(x.Raw())
		if mag > 0 {
			mag = -mag
		}
		v, k := expWork(mag, frac, fixed.WorkFrac, expCORDIC(n))
		e := fixed.RoundShift(v, uint(-k))
		u := fixed.MulWork(e, e)
		t, _ = fixed.DivWork(fixed.WorkOne-u, fixed.WorkOne+u)
	}
	if x.Raw() < 0 {
		t = -t
	}
	return fixed.FromWork[F](t).WithOverflow(x.Overflow())
}
