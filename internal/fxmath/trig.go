package fxmath

import (
	"github.com/san-kum/fxmath/internal/cordic"
	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/lut"
	"github.com/san-kum/fxmath/internal/reduce"
	"github.com/san-kum/fxmath/internal/taylor"
)

// sinCos evaluates both functions at raw·2^-frac in the working format.
type sinCos func(raw int64, frac uint, n int) (sin, cos int64)

func sinCosLUT(raw int64, frac uint, _ int) (int64, int64) {
	a := reduce.Quadrant(raw, frac)
	b := lut.BitsFor(frac)
	return a.Fold(lut.Sin(a.R, b), lut.Cos(a.R, b))
}

func sinCosTaylor(raw int64, frac uint, _ int) (int64, int64) {
	a := reduce.Octant(raw, frac)
	return a.Fold(taylor.Sin(a.R, frac), taylor.Cos(a.R, frac))
}

func sinCosCORDIC(raw int64, frac uint, n int) (int64, int64) {
	a := reduce.Quadrant(raw, frac)
	return a.Fold(cordic.SinCos(a.R, n))
}

func sine[F fixed.Format](x fixed.Fixed[F], k sinCos, n int) fixed.Fixed[F] {
	s, _ := k(x.Raw(), fixed.FracBits[F](), n)
	return fixed.FromWork[F](s).WithOverflow(x.Overflow())
}

func cosine[F fixed.Format](x fixed.Fixed[F], k sinCos, n int) fixed.Fixed[F] {
	_, c := k(x.Raw(), fixed.FracBits[F](), n)
	return fixed.FromWork[F](c).WithOverflow(x.Overflow())
}

// tangent reports a pole when cos rounds to zero in the output format.
func tangent[F fixed.Format](x fixed.Fixed[F], k sinCos, n int) (fixed.Fixed[F], error) {
	frac := fixed.FracBits[F]()
	s, c := k(x.Raw(), frac, n)

	var guard int64
	if frac < fixed.WorkFrac {
		guard = int64(1) << (fixed.WorkFrac - frac - 1)
	}
	if c <= guard && c >= -guard {
		return fixed.Fixed[F]{}, fixed.NewDomainError("tan", x.Float64(), "pole")
	}
	q, ovf := fixed.DivShift(s, c, frac)
	return fixed.FromRaw[F](q).WithOverflow(ovf || x.Overflow()), nil
}

func SinLUT[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	return sine(x, sinCosLUT, 0)
}

func SinTaylor[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	return sine(x, sinCosTaylor, 0)
}

func SinCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	return sine(x, sinCosCORDIC, n)
}

func CosLUT[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	return cosine(x, sinCosLUT, 0)
}

func CosTaylor[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] {
	return cosine(x, sinCosTaylor, 0)
}

func CosCORDIC[F fixed.Format](x fixed.Fixed[F], n int) fixed.Fixed[F] {
	return cosine(x, sinCosCORDIC, n)
}

// SinCos returns both values from a single CORDIC rotation.
func SinCos[F fixed.Format](x fixed.Fixed[F], n int) (sin, cos fixed.Fixed[F]) {
	s, c := sinCosCORDIC(x.Raw(), fixed.FracBits[F](), n)
	return fixed.FromWork[F](s).WithOverflow(x.Overflow()), fixed.FromWork[F](c).WithOverflow(x.Overflow())
}

// TanLUT returns sin/cos. Arguments at a pole of the output format
// return ErrDomain; large quotients saturate.
func TanLUT[F fixed.Format](x fixed.Fixed[F]) (fixed.Fixed[F], error) {
	return tangent(x, sinCosLUT, 0)
}

func TanTaylor[F fixed.Format](x fixed.Fixed[F]) (fixed.Fixed[F], error) {
	return tangent(x, sinCosTaylor, 0)
}

func TanCORDIC[F fixed.Format](x fixed.Fixed[F], n int) (fixed.Fixed[F], error) {
	return tangent(x, sinCosCORDIC, n)
}
