// Package lut evaluates functions from uniform sample tables over reduced
// domains.
package lut

import (
	"math"
	"math/bits"
	"sync"

	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/tables"
)

const (
	MinBits = 6
	MaxBits = 14

	posFrac   = 32
	scaleFrac = 40
)

// Table holds 2^bits+1 samples of a function over [lo, lo+span].
type Table struct {
	lo      int64
	scale   int64 // 2^bits/span, scaleFrac fractional bits
	bits    uint
	samples []int64
}

// Build samples fn at 2^b+1 evenly spaced points. lo and span are working
// values.
func Build(b uint, lo, span int64, fn func(float64) float64) *Table {
	n := 1 << b
	t := &Table{lo: lo, bits: b, samples: make([]int64, n+1)}

	loF, spanF := fixed.WorkFloat(lo), fixed.WorkFloat(span)
	for i := 0; i <= n; i++ {
		x := loF + spanF*float64(i)/float64(n)
		t.samples[i] = fixed.WorkFromFloat(fn(x))
	}

	shift := b + scaleFrac + fixed.WorkFrac
	hi := uint64(1) << (shift - 64)
	q, _ := bits.Div64(hi, 0, uint64(span))
	t.scale = int64(q)
	return t
}

// Size returns the number of samples.
func (t *Table) Size() int { return len(t.samples) }

func (t *Table) locate(x int64) (int, int64) {
	dx := x - t.lo
	if dx <= 0 {
		return 0, 0
	}
	pos, _ := fixed.MulShift(dx, t.scale, fixed.WorkFrac+scaleFrac-posFrac)
	i := int(pos >> posFrac)
	n := len(t.samples) - 1
	if i >= n {
		return n, 0
	}
	return i, pos & (1<<posFrac - 1)
}

// Interp interpolates linearly between the two surrounding samples.
func (t *Table) Interp(x int64) int64 {
	i, f := t.locate(x)
	if f == 0 {
		return t.samples[i]
	}
	d := t.samples[i+1] - t.samples[i]
	step, _ := fixed.MulShift(d, f, posFrac)
	return t.samples[i] + step
}

// BitsFor picks the table size for an output with frac fractional bits:
// interpolation error shrinks with the square of the step.
func BitsFor(frac uint) uint {
	return min(max(frac/2+2, MinBits), MaxBits)
}

type lazy struct {
	once sync.Once
	t    *Table
}

var (
	sinTables  [MaxBits + 1]lazy
	log2Tables [MaxBits + 1]lazy
)

func get(cache *[MaxBits + 1]lazy, b uint, build func(uint) *Table) *Table {
	b = min(max(b, MinBits), MaxBits)
	e := &cache[b]
	e.once.Do(func() { e.t = build(b) })
	return e.t
}

// SinTable covers [0, π/2].
func SinTable(b uint) *Table {
	return get(&sinTables, b, func(b uint) *Table {
		return Build(b, 0, tables.Work(tables.HalfPi), math.Sin)
	})
}

// Log2Table covers [1, 2].
func Log2Table(b uint) *Table {
	return get(&log2Tables, b, func(b uint) *Table {
		return Build(b, fixed.WorkOne, fixed.WorkOne, math.Log2)
	})
}

// Sin evaluates sin r for r in [0, π/2].
func Sin(r int64, b uint) int64 {
	return SinTable(b).Interp(r)
}

// Cos evaluates cos r = sin(π/2 − r) for r in [0, π/2].
func Cos(r int64, b uint) int64 {
	return SinTable(b).Interp(tables.Work(tables.HalfPi) - r)
}

// Log2 evaluates log2 m for m in [1, 2].
func Log2(m int64, b uint) int64 {
	return Log2Table(b).Interp(m)
}
