// Package reduce maps arguments onto the small domains the evaluators
// accept, recording what is needed to map results back.
package reduce

import (
	"math"
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/tables"
)

// Remainder is |x| = Q·c + R with R in [0, c].
type Remainder struct {
	Q   uint64
	R   int64 // working format
	Neg bool
}

// Mod reduces |raw·2^-frac| modulo c exactly against the wide constant.
// Only the final remainder is rounded into the working format.
func Mod(raw int64, frac uint, c tables.Const) Remainder {
	neg := raw < 0
	mag := uint64(raw)
	if neg {
		mag = -mag
	}

	var x, q, r uint256.Int
	x.SetUint64(mag)
	x.Lsh(&x, tables.WideFrac-frac)
	m := tables.Wide(c)
	q.Div(&x, &m)
	r.Mod(&x, &m)

	return Remainder{Q: q.Uint64(), R: int64(roundWide(&r, tables.WideFrac-fixed.WorkFrac)), Neg: neg}
}

func roundWide(r *uint256.Int, s uint) uint64 {
	var q, rem, half, mask uint256.Int
	q.Rsh(r, s)
	mask.Lsh(uint256.NewInt(1), s)
	mask.SubUint64(&mask, 1)
	rem.And(r, &mask)
	half.Lsh(uint256.NewInt(1), s-1)
	switch rem.Cmp(&half) {
	case 1:
		q.AddUint64(&q, 1)
	case 0:
		if q.Uint64()&1 == 1 {
			q.AddUint64(&q, 1)
		}
	}
	return q.Uint64()
}

// Angle is an argument reduced to the first quadrant.
type Angle struct {
	R        int64 // [0, π/2], working format
	Quadrant uint8
	Neg      bool
	Swap     bool // R was folded from (π/4, π/2]; sin and cos trade roles
}

// Quadrant reduces x modulo π/2.
func Quadrant(raw int64, frac uint) Angle {
	m := Mod(raw, frac, tables.HalfPi)
	return Angle{R: m.R, Quadrant: uint8(m.Q & 3), Neg: m.Neg}
}

// Octant reduces x modulo π/2 and then folds the remainder into [0, π/4].
func Octant(raw int64, frac uint) Angle {
	a := Quadrant(raw, frac)
	if a.R > tables.Work(tables.QuarterPi) {
		a.R = tables.Work(tables.HalfPi) - a.R
		a.Swap = true
	}
	return a
}

// Fold maps sin and cos of the reduced argument back to the original
// angle.
func (a Angle) Fold(sinR, cosR int64) (sin, cos int64) {
	if a.Swap {
		sinR, cosR = cosR, sinR
	}
	switch a.Quadrant {
	case 0:
		sin, cos = sinR, cosR
	case 1:
		sin, cos = cosR, -sinR
	case 2:
		sin, cos = -sinR, -cosR
	default:
		sin, cos = -cosR, sinR
	}
	if a.Neg {
		sin = -sin
	}
	return sin, cos
}

// maxExp2 bounds the binary exponent of exp; anything beyond saturates
// every supported format.
const maxExp2 = 1 << 20

// Exp2 is x = K·ln2 + R.
type Exp2 struct {
	K int
	R int64 // [0, ln2], working format
}

// Exp2Split splits x for exp(x) = 2^K·exp(R), for either sign of x.
func Exp2Split(raw int64, frac uint) Exp2 {
	m := Mod(raw, frac, tables.Ln2)
	k := int(min(m.Q, maxExp2))
	if !m.Neg {
		return Exp2{K: k, R: m.R}
	}
	if m.R == 0 {
		return Exp2{K: -k}
	}
	return Exp2{K: -k - 1, R: tables.Work(tables.Ln2) - m.R}
}

// Normalize writes u·2^-frac as m·2^e with m in [1, 2). u must be non-zero.
func Normalize(u uint64, frac uint) (m int64, e int) {
	n := bits.Len64(u) - 1
	e = n - int(frac)
	shift := fixed.WorkFrac - n
	if shift >= 0 {
		m = int64(u << uint(shift))
	} else {
		m = int64(fixed.RoundShiftU(u, uint(-shift)))
	}
	if m == 2*fixed.WorkOne {
		m, e = fixed.WorkOne, e+1
	}
	return m, e
}

// NormalizeEven writes u·2^-frac as m·4^e with m in [0.25, 1).
func NormalizeEven(u uint64, frac uint) (m int64, e int) {
	n := bits.Len64(u) - 1
	v := n - int(frac)
	e = v>>1 + 1
	shift := fixed.WorkFrac - int(frac) - 2*e
	if shift >= 0 {
		m = int64(u << uint(shift))
	} else {
		m = int64(fixed.RoundShiftU(u, uint(-shift)))
	}
	if m == fixed.WorkOne {
		m, e = fixed.WorkOne/4, e+1
	}
	return m, e
}

// Reciprocal returns 1/|x| in the working format for |x| ≥ 1.
func Reciprocal(raw int64, frac uint) int64 {
	mag := raw
	if mag < 0 {
		mag = -mag
	}
	if mag < 0 {
		mag = math.MaxInt64
	}
	q, _ := fixed.DivShift(fixed.WorkOne, mag, frac)
	return q
}
