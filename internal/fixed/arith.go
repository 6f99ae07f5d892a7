package fixed

import (
	"math"
	"math/bits"
)

func absU(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func saturated(neg bool) int64 {
	if neg {
		return math.MinInt64
	}
	return math.MaxInt64
}

// RoundShift returns v/2^s rounded half to even.
func RoundShift(v int64, s uint) int64 {
	if s == 0 {
		return v
	}
	if s >= 64 {
		return 0
	}
	q := v >> s
	rem := uint64(v) & (1<<s - 1)
	half := uint64(1) << (s - 1)
	if rem > half || (rem == half && q&1 == 1) {
		q++
	}
	return q
}

// RoundShiftU is RoundShift for unsigned values.
func RoundShiftU(v uint64, s uint) uint64 {
	if s == 0 {
		return v
	}
	if s >= 64 {
		if s == 64 && v > 1<<63 {
			return 1
		}
		return 0
	}
	q := v >> s
	rem := v & (1<<s - 1)
	half := uint64(1) << (s - 1)
	if rem > half || (rem == half && q&1 == 1) {
		q++
	}
	return q
}

// ShlSat returns v·2^s, saturating to the int64 range.
func ShlSat(v int64, s uint) (int64, bool) {
	if v == 0 || s == 0 {
		return v, false
	}
	if s >= 63 {
		return saturated(v < 0), true
	}
	lim := int64(math.MaxInt64) >> s
	if v > lim {
		return math.MaxInt64, true
	}
	if v < -lim-1 {
		return math.MinInt64, true
	}
	return v << s, false
}

func addSat(a, b int64) (int64, bool) {
	s := a + b
	if a > 0 && b > 0 && s < 0 {
		return math.MaxInt64, true
	}
	if a < 0 && b < 0 && s >= 0 {
		return math.MinInt64, true
	}
	return s, false
}

func subSat(a, b int64) (int64, bool) {
	d := a - b
	if a >= 0 && b < 0 && d < 0 {
		return math.MaxInt64, true
	}
	if a < 0 && b > 0 && d >= 0 {
		return math.MinInt64, true
	}
	return d, false
}

func cmp128(ah, al, bh, bl uint64) int {
	switch {
	case ah > bh:
		return 1
	case ah < bh:
		return -1
	case al > bl:
		return 1
	case al < bl:
		return -1
	}
	return 0
}

// shrRound128 shifts the 128-bit value right by s (< 128), rounding half
// to even.
func shrRound128(hi, lo uint64, s uint) (uint64, uint64) {
	if s == 0 {
		return hi, lo
	}
	var qh, ql, rh, rl, hh, hl uint64
	if s < 64 {
		qh, ql = hi>>s, lo>>s|hi<<(64-s)
		rl = lo & (1<<s - 1)
		hl = 1 << (s - 1)
	} else {
		t := s - 64
		ql = hi >> t
		rh, rl = hi&(1<<t-1), lo
		if t == 0 {
			hl = 1 << 63
		} else {
			hh = 1 << (t - 1)
		}
	}
	c := cmp128(rh, rl, hh, hl)
	if c > 0 || (c == 0 && ql&1 == 1) {
		ql++
		if ql == 0 {
			qh++
		}
	}
	return qh, ql
}

func fromMagnitude(neg bool, hi, lo uint64) (int64, bool) {
	if hi != 0 {
		return saturated(neg), true
	}
	if neg {
		if lo > 1<<63 {
			return math.MinInt64, true
		}
		return -int64(lo), false
	}
	if lo > math.MaxInt64 {
		return math.MaxInt64, true
	}
	return int64(lo), false
}

// MulShift returns a·b/2^s rounded half to even, using a 128-bit
// intermediate. The flag reports int64 saturation.
func MulShift(a, b int64, s uint) (int64, bool) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absU(a), absU(b))
	if s >= 128 {
		return 0, false
	}
	hi, lo = shrRound128(hi, lo, s)
	return fromMagnitude(neg, hi, lo)
}

// DivShift returns a·2^s/b rounded half to even. b must be non-zero and
// s below 64.
func DivShift(a, b int64, s uint) (int64, bool) {
	neg := (a < 0) != (b < 0)
	ua, ub := absU(a), absU(b)
	var hi, lo uint64
	if s > 0 {
		hi, lo = ua>>(64-s), ua<<s
	} else {
		lo = ua
	}
	if hi >= ub {
		return saturated(neg), true
	}
	q, r := bits.Div64(hi, lo, ub)
	if r > ub-r || (r == ub-r && q&1 == 1) {
		q++
		if q == 0 {
			return saturated(neg), true
		}
	}
	return fromMagnitude(neg, 0, q)
}

func mulShiftU(a, b uint64, s uint) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	if s >= 128 {
		return 0, false
	}
	hi, lo = shrRound128(hi, lo, s)
	if hi != 0 {
		return math.MaxUint64, true
	}
	return lo, false
}

func divShiftU(a, b uint64, s uint) (uint64, bool) {
	var hi, lo uint64
	if s > 0 {
		hi, lo = a>>(64-s), a<<s
	} else {
		lo = a
	}
	if hi >= b {
		return math.MaxUint64, true
	}
	q, r := bits.Div64(hi, lo, b)
	if r > b-r || (r == b-r && q&1 == 1) {
		q++
		if q == 0 {
			return math.MaxUint64, true
		}
	}
	return q, false
}

// rescale moves v from one fractional width to another.
func rescale(v int64, from, to uint) (int64, bool) {
	if to >= from {
		return ShlSat(v, to-from)
	}
	return RoundShift(v, from-to), false
}

func rescaleU(v uint64, from, to uint) (uint64, bool) {
	if to >= from {
		s := to - from
		if v == 0 || s == 0 {
			return v, false
		}
		if s >= 64 || v > math.MaxUint64>>s {
			return math.MaxUint64, true
		}
		return v << s, false
	}
	return RoundShiftU(v, from-to), false
}
