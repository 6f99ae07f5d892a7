package fixed

func (x Fixed[F]) fracMask() int64 {
	f := FracBits[F]()
	if f == 0 {
		return 0
	}
	return int64(uint64(1)<<f - 1)
}

func (x Fixed[F]) plusOne(v int64) Fixed[F] {
	f := FracBits[F]()
	if f >= 63 {
		if v < 0 {
			return Fixed[F]{ovf: x.ovf}
		}
		return newFixed[F](saturated(false), true)
	}
	s, ovf := addSat(v, int64(1)<<f)
	return newFixed[F](s, ovf || x.ovf)
}

// Floor rounds toward negative infinity.
func (x Fixed[F]) Floor() Fixed[F] {
	return Fixed[F]{raw: x.raw &^ x.fracMask(), ovf: x.ovf}
}

// Ceil rounds toward positive infinity, saturating when the next integer
// is not representable.
func (x Fixed[F]) Ceil() Fixed[F] {
	fl := x.raw &^ x.fracMask()
	if fl == x.raw {
		return x
	}
	return x.plusOne(fl)
}

// Trunc rounds toward zero.
func (x Fixed[F]) Trunc() Fixed[F] {
	if x.raw >= 0 {
		return x.Floor()
	}
	return x.Ceil()
}

// Round rounds to the nearest integer, ties to even.
func (x Fixed[F]) Round() Fixed[F] {
	f := FracBits[F]()
	mask := x.fracMask()
	fl := x.raw &^ mask
	if f == 0 {
		return x
	}
	rem := x.raw & mask
	half := int64(1) << (f - 1)
	odd := f < 63 && (fl>>f)&1 == 1
	if f == 63 {
		odd = fl != 0
	}
	if rem > half || (rem == half && odd) {
		return x.plusOne(fl)
	}
	return Fixed[F]{raw: fl, ovf: x.ovf}
}

// IsInteger reports whether x has no fractional part.
func (x Fixed[F]) IsInteger() bool {
	return x.raw&x.fracMask() == 0
}

// IsOddInteger reports whether x is an odd integer.
func (x Fixed[F]) IsOddInteger() bool {
	f := FracBits[F]()
	if !x.IsInteger() || f >= 63 {
		return false
	}
	return (x.raw>>f)&1 == 1
}
