package fixed

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

// UFixed is an unsigned fixed-point number in format F. All W bits carry
// magnitude.
type UFixed[F Format] struct {
	raw uint64
	ovf bool
}

func newUFixed[F Format](raw uint64, ovf bool) UFixed[F] {
	v, sat := layoutOf[F]().clampU(raw)
	return UFixed[F]{raw: v, ovf: ovf || sat}
}

func UFromRaw[F Format](raw uint64) UFixed[F] {
	return newUFixed[F](raw, false)
}

func UFromInt[F Format](v uint64) UFixed[F] {
	raw, ovf := rescaleU(v, 0, FracBits[F]())
	return newUFixed[F](raw, ovf)
}

// UFromFloat converts a float, rounding half to even. Negative inputs
// saturate to zero and NaN converts to zero, both with the flag set.
func UFromFloat[F Format, T constraints.Float](v T) UFixed[F] {
	f := float64(v)
	if math.IsNaN(f) {
		return UFixed[F]{ovf: true}
	}
	r := math.RoundToEven(math.Ldexp(f, int(FracBits[F]())))
	switch {
	case r < 0:
		return UFixed[F]{ovf: true}
	case r >= 0x1p64:
		return newUFixed[F](math.MaxUint64, true)
	}
	return newUFixed[F](uint64(r), false)
}

// Unsigned converts x, rejecting negative values with ErrDomain.
func Unsigned[F Format](x Fixed[F]) (UFixed[F], error) {
	if x.raw < 0 {
		return UFixed[F]{}, NewDomainError("unsigned", x.Float64(), "negative input")
	}
	return UFixed[F]{raw: uint64(x.raw), ovf: x.ovf}, nil
}

// Signed converts u, saturating values above the signed maximum.
func Signed[F Format](u UFixed[F]) Fixed[F] {
	if u.raw > math.MaxInt64 {
		return newFixed[F](math.MaxInt64, true)
	}
	return newFixed[F](int64(u.raw), u.ovf)
}

func UMax[F Format]() UFixed[F] { return UFixed[F]{raw: layoutOf[F]().umax} }

func (u UFixed[F]) Raw() uint64    { return u.raw }
func (u UFixed[F]) Overflow() bool { return u.ovf }
func (u UFixed[F]) IsZero() bool   { return u.raw == 0 }

func (u UFixed[F]) Err() error {
	if u.ovf {
		return ErrOverflow
	}
	return nil
}

func (u UFixed[F]) WithOverflow(ovf bool) UFixed[F] {
	u.ovf = u.ovf || ovf
	return u
}

func (u UFixed[F]) Float64() float64 {
	return math.Ldexp(float64(u.raw), -int(FracBits[F]()))
}

func (u UFixed[F]) Decimal() decimal.Decimal {
	f := FracBits[F]()
	p := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(f)), nil)
	p.Mul(p, new(big.Int).SetUint64(u.raw))
	return decimal.NewFromBigInt(p, -int32(f))
}

func (u UFixed[F]) String() string {
	return u.Decimal().String()
}

func (u UFixed[F]) Add(v UFixed[F]) UFixed[F] {
	s := u.raw + v.raw
	return newUFixed[F](s, s < u.raw || u.ovf || v.ovf)
}

// Sub saturates at zero.
func (u UFixed[F]) Sub(v UFixed[F]) UFixed[F] {
	if v.raw > u.raw {
		return UFixed[F]{ovf: true}
	}
	return UFixed[F]{raw: u.raw - v.raw, ovf: u.ovf || v.ovf}
}

func (u UFixed[F]) Mul(v UFixed[F]) UFixed[F] {
	p, ovf := mulShiftU(u.raw, v.raw, FracBits[F]())
	return newUFixed[F](p, ovf || u.ovf || v.ovf)
}

func (u UFixed[F]) Div(v UFixed[F]) (UFixed[F], error) {
	if v.raw == 0 {
		return newUFixed[F](math.MaxUint64, true), ErrDivideByZero
	}
	q, ovf := divShiftU(u.raw, v.raw, FracBits[F]())
	return newUFixed[F](q, ovf || u.ovf || v.ovf), nil
}

func (u UFixed[F]) Cmp(v UFixed[F]) int {
	switch {
	case u.raw < v.raw:
		return -1
	case u.raw > v.raw:
		return 1
	}
	return 0
}
