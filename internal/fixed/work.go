package fixed

import "math"

// Evaluators run on int64 raw values with WorkFrac fractional bits (Q7.56)
// and round into the caller's format once at the end.
const (
	WorkFrac = 56
	WorkOne  = int64(1) << WorkFrac
)

// ToWork returns x in the working format. The flag reports that |x| does
// not fit in the working range.
func (x Fixed[F]) ToWork() (int64, bool) {
	return rescale(x.raw, FracBits[F](), WorkFrac)
}

func (u UFixed[F]) ToWork() (int64, bool) {
	v, ovf := rescaleU(u.raw, FracBits[F](), WorkFrac)
	if v > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(v), ovf
}

// FromWork rounds a working value into F.
func FromWork[F Format](w int64) Fixed[F] {
	raw, ovf := rescale(w, WorkFrac, FracBits[F]())
	return newFixed[F](raw, ovf)
}

// FromWorkScaled rounds w·2^e into F, saturating or flushing to zero.
func FromWorkScaled[F Format](w int64, e int) Fixed[F] {
	shift := int(FracBits[F]()) - WorkFrac + e
	if shift >= 0 {
		raw, ovf := ShlSat(w, uint(shift))
		return newFixed[F](raw, ovf)
	}
	return newFixed[F](RoundShift(w, uint(-shift)), false)
}

func UFromWork[F Format](w int64) UFixed[F] {
	return UFromWorkScaled[F](w, 0)
}

// UFromWorkScaled is FromWorkScaled for unsigned results. Negative values
// saturate to zero.
func UFromWorkScaled[F Format](w int64, e int) UFixed[F] {
	if w < 0 {
		return UFixed[F]{ovf: true}
	}
	shift := int(FracBits[F]()) - WorkFrac + e
	if shift >= 0 {
		raw, ovf := rescaleU(uint64(w), 0, uint(shift))
		return newUFixed[F](raw, ovf)
	}
	return newUFixed[F](RoundShiftU(uint64(w), uint(-shift)), false)
}

// MulWork multiplies two working values.
func MulWork(a, b int64) int64 {
	p, _ := MulShift(a, b, WorkFrac)
	return p
}

// DivWork divides two working values. Division by zero saturates.
func DivWork(a, b int64) (int64, bool) {
	if b == 0 {
		return saturated(a < 0), true
	}
	return DivShift(a, b, WorkFrac)
}

// WorkFloat converts a working value for display and tests.
func WorkFloat(w int64) float64 {
	return math.Ldexp(float64(w), -WorkFrac)
}

// WorkFromFloat converts a float into the working format.
func WorkFromFloat(f float64) int64 {
	return int64(math.RoundToEven(math.Ldexp(f, WorkFrac)))
}

// Rescale moves a raw value between fractional widths, rounding half to
// even and saturating to int64.
func Rescale(v int64, from, to uint) (int64, bool) {
	return rescale(v, from, to)
}
