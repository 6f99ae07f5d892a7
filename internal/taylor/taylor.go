// Package taylor evaluates truncated power series in the working format.
// Arguments must already be reduced.
package taylor

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/san-kum/fxmath/internal/fixed"
	"github.com/san-kum/fxmath/internal/tables"
)

const maxTerms = 24

// Series is a polynomial in t (or t² for the odd and even trig series).
type Series struct {
	name   string
	coeffs []int64
	terms  [fixed.WorkFrac + 1]int
}

func (s *Series) Name() string { return s.name }

// Terms returns the number of terms needed for an output with frac
// fractional bits.
func (s *Series) Terms(frac uint) int {
	return s.terms[min(frac, fixed.WorkFrac)]
}

// Horner evaluates the first n coefficients at t, rounding after every
// multiply-add.
func (s *Series) Horner(t int64, n int) int64 {
	n = min(max(n, 1), len(s.coeffs))
	p := s.coeffs[n-1]
	for k := n - 2; k >= 0; k-- {
		p = s.coeffs[k] + fixed.MulWork(t, p)
	}
	return p
}

var (
	once sync.Once

	sinSeries   Series // sin r = r·P(r²), r ∈ [0, π/4]
	cosSeries   Series // cos r = P(r²), r ∈ [0, π/4]
	expSeries   Series // exp r = P(r), r ∈ [0, ln2]
	atanhSeries Series // atanh s = s·P(s²), s ∈ [0, 1/3]
)

func load() { once.Do(build) }

func build() {
	prec := int32(40)
	one := decimal.New(1, 0)
	fact := func(n int64) decimal.Decimal {
		f := one
		for i := int64(2); i <= n; i++ {
			f = f.Mul(decimal.NewFromInt(i))
		}
		return f
	}
	sign := func(k int) decimal.Decimal {
		if k%2 == 1 {
			return one.Neg()
		}
		return one
	}

	sinSeries.name, cosSeries.name = "sin", "cos"
	expSeries.name, atanhSeries.name = "exp", "atanh"
	for k := 0; k < maxTerms; k++ {
		sinSeries.coeffs = append(sinSeries.coeffs,
			tables.Quantize(sign(k).DivRound(fact(int64(2*k+1)), prec), fixed.WorkFrac))
		cosSeries.coeffs = append(cosSeries.coeffs,
			tables.Quantize(sign(k).DivRound(fact(int64(2*k)), prec), fixed.WorkFrac))
		expSeries.coeffs = append(expSeries.coeffs,
			tables.Quantize(one.DivRound(fact(int64(k)), prec), fixed.WorkFrac))
		atanhSeries.coeffs = append(atanhSeries.coeffs,
			tables.Quantize(one.DivRound(decimal.NewFromInt(int64(2*k+1)), prec), fixed.WorkFrac))
	}

	// Pick the first term count whose next omitted term is below half an
	// output ULP at the edge of the reduced domain.
	fill(&sinSeries, func(n int) float64 { return math.Pow(math.Pi/4, float64(2*n+1)) / factorial(2*n+1) })
	fill(&cosSeries, func(n int) float64 { return math.Pow(math.Pi/4, float64(2*n)) / factorial(2*n) })
	fill(&expSeries, func(n int) float64 { return 2 * math.Pow(math.Ln2, float64(n)) / factorial(n) })
	fill(&atanhSeries, func(n int) float64 { return 2 * math.Pow(1.0/3, float64(2*n+1)) / float64(2*n+1) * 9 / 8 })
}

func fill(s *Series, omitted func(n int) float64) {
	for frac := range s.terms {
		limit := math.Ldexp(1, -int(frac)-1)
		n := 1
		for n < maxTerms && omitted(n) > limit {
			n++
		}
		s.terms[frac] = n
	}
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// Sin returns sin r for r in [0, π/4] with enough terms for frac bits.
func Sin(r int64, frac uint) int64 {
	load()
	r2 := fixed.MulWork(r, r)
	return fixed.MulWork(r, sinSeries.Horner(r2, sinSeries.Terms(frac)))
}

// Cos returns cos r for r in [0, π/4].
func Cos(r int64, frac uint) int64 {
	load()
	return cosSeries.Horner(fixed.MulWork(r, r), cosSeries.Terms(frac))
}

// Exp returns exp r for r in [0, ln2].
func Exp(r int64, frac uint) int64 {
	load()
	return expSeries.Horner(r, expSeries.Terms(frac))
}

// Ln returns ln m for m in [1, 2] as 2·atanh((m−1)/(m+1)).
func Ln(m int64, frac uint) int64 {
	load()
	s, _ := fixed.DivWork(m-fixed.WorkOne, m+fixed.WorkOne)
	p := atanhSeries.Horner(fixed.MulWork(s, s), atanhSeries.Terms(frac))
	return 2 * fixed.MulWork(s, p)
}
