package fixed

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// Fixed is a signed fixed-point number in format F. The raw two's-complement
// value is kept sign-extended; the represented value is raw/2^(W-IW).
// The zero value is 0.
type Fixed[F Format] struct {
	raw int64
	ovf bool
}

func newFixed[F Format](raw int64, ovf bool) Fixed[F] {
	v, sat := layoutOf[F]().clamp(raw)
	return Fixed[F]{raw: v, ovf: ovf || sat}
}

// FromRaw builds a value from its raw integer, saturating to W bits.
func FromRaw[F Format](raw int64) Fixed[F] {
	return newFixed[F](raw, false)
}

// FromInt converts an integer, saturating when it does not fit.
func FromInt[F Format](v int64) Fixed[F] {
	raw, ovf := ShlSat(v, FracBits[F]())
	return newFixed[F](raw, ovf)
}

// FromFloat converts a float, rounding half to even and saturating.
// NaN converts to zero with the overflow flag set.
func FromFloat[F Format, T constraints.Float](v T) Fixed[F] {
	f := float64(v)
	if math.IsNaN(f) {
		return Fixed[F]{ovf: true}
	}
	r := math.RoundToEven(math.Ldexp(f, int(FracBits[F]())))
	switch {
	case r >= 0x1p63:
		return newFixed[F](math.MaxInt64, true)
	case r < -0x1p63:
		return newFixed[F](math.MinInt64, true)
	}
	return newFixed[F](int64(r), false)
}

// Convert rescales x into format To.
func Convert[To, From Format](x Fixed[From]) Fixed[To] {
	raw, ovf := rescale(x.raw, FracBits[From](), FracBits[To]())
	return newFixed[To](raw, ovf || x.ovf)
}

// Min returns the most negative value of F.
func Min[F Format]() Fixed[F] { return Fixed[F]{raw: layoutOf[F]().min} }

// Max returns the largest value of F.
func Max[F Format]() Fixed[F] { return Fixed[F]{raw: layoutOf[F]().max} }

// Epsilon returns one unit in the last place.
func Epsilon[F Format]() Fixed[F] { return Fixed[F]{raw: 1} }

// One returns 1, saturated when F has no room for it.
func One[F Format]() Fixed[F] { return FromInt[F](1) }

func (x Fixed[F]) Raw() int64     { return x.raw }
func (x Fixed[F]) Overflow() bool { return x.ovf }
func (x Fixed[F]) IsZero() bool   { return x.raw == 0 }

// Err returns ErrOverflow when the value carries the saturation flag.
func (x Fixed[F]) Err() error {
	if x.ovf {
		return ErrOverflow
	}
	return nil
}

// WithOverflow ORs ovf into the sticky flag.
func (x Fixed[F]) WithOverflow(ovf bool) Fixed[F] {
	x.ovf = x.ovf || ovf
	return x
}

func (x Fixed[F]) Float64() float64 {
	return math.Ldexp(float64(x.raw), -int(FracBits[F]()))
}

// Decimal returns the exact decimal value of x.
func (x Fixed[F]) Decimal() decimal.Decimal {
	f := FracBits[F]()
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(f)), nil)
	p.Mul(p, big.NewInt(x.raw))
	return decimal.NewFromBigInt(p, -int32(f))
}

func (x Fixed[F]) String() string {
	return x.Decimal().String()
}

func (x Fixed[F]) Add(y Fixed[F]) Fixed[F] {
	s, ovf := addSat(x.raw, y.raw)
	return newFixed[F](s, ovf || x.ovf || y.ovf)
}

func (x Fixed[F]) Sub(y Fixed[F]) Fixed[F] {
	d, ovf := subSat(x.raw, y.raw)
	return newFixed[F](d, ovf || x.ovf || y.ovf)
}

func (x Fixed[F]) Mul(y Fixed[F]) Fixed[F] {
	p, ovf := MulShift(x.raw, y.raw, FracBits[F]())
	return newFixed[F](p, ovf || x.ovf || y.ovf)
}

// Div returns x/y. Division by zero returns ErrDivideByZero and a value
// saturated toward the sign of x.
func (x Fixed[F]) Div(y Fixed[F]) (Fixed[F], error) {
	if y.raw == 0 {
		return newFixed[F](saturated(x.raw < 0), true), ErrDivideByZero
	}
	q, ovf := DivShift(x.raw, y.raw, FracBits[F]())
	return newFixed[F](q, ovf || x.ovf || y.ovf), nil
}

func (x Fixed[F]) Neg() Fixed[F] {
	l := layoutOf[F]()
	if x.raw == l.min {
		return Fixed[F]{raw: l.max, ovf: true}
	}
	return Fixed[F]{raw: -x.raw, ovf: x.ovf}
}

// Abs saturates for the minimum value.
func (x Fixed[F]) Abs() Fixed[F] {
	if x.raw < 0 {
		return x.Neg()
	}
	return x
}

// Shl multiplies by 2^n with saturation.
func (x Fixed[F]) Shl(n uint) Fixed[F] {
	v, ovf := ShlSat(x.raw, n)
	return newFixed[F](v, ovf || x.ovf)
}

// Shr divides by 2^n, rounding half to even.
func (x Fixed[F]) Shr(n uint) Fixed[F] {
	return Fixed[F]{raw: RoundShift(x.raw, n), ovf: x.ovf}
}

func (x Fixed[F]) Cmp(y Fixed[F]) int {
	switch {
	case x.raw < y.raw:
		return -1
	case x.raw > y.raw:
		return 1
	}
	return 0
}

func (x Fixed[F]) Less(y Fixed[F]) bool  { return x.raw < y.raw }
func (x Fixed[F]) Equal(y Fixed[F]) bool { return x.raw == y.raw }

func (x Fixed[F]) Sign() int {
	switch {
	case x.raw < 0:
		return -1
	case x.raw > 0:
		return 1
	}
	return 0
}
