package tables

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/fxmath/internal/fixed"
)

const (
	piDigits  = "3.14159265358979323846264338327950288419716939937510582097494459"
	ln2Digits = "0.69314718055994530941723212145817656807550013436025525412068000"
)

func TestExactConstants(t *testing.T) {
	tests := []struct {
		c    Const
		want string
	}{
		{Pi, piDigits},
		{Ln2, ln2Digits},
	}
	tol := decimal.New(1, -55)
	for _, tt := range tests {
		t.Run(tt.c.String(), func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			diff := Exact(tt.c).Sub(want).Abs()
			require.True(t, diff.LessThan(tol), "%s off by %s", tt.c, diff)
		})
	}
}

func TestScalarConstants(t *testing.T) {
	tests := []struct {
		c    Const
		want float64
	}{
		{Pi, math.Pi},
		{HalfPi, math.Pi / 2},
		{QuarterPi, math.Pi / 4},
		{TwoOverPi, 2 / math.Pi},
		{Ln2, math.Ln2},
		{InvLn2, 1 / math.Ln2},
	}
	for _, tt := range tests {
		got := math.Ldexp(float64(Scalar(tt.c)), -Frac)
		if math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("Scalar(%s) = %v, want %v", tt.c, got, tt.want)
		}
		if w := fixed.WorkFloat(Work(tt.c)); math.Abs(w-tt.want) > 1e-15 {
			t.Errorf("Work(%s) = %v, want %v", tt.c, w, tt.want)
		}
	}
}

func TestWideMatchesScalar(t *testing.T) {
	for c := Const(0); c < numConsts; c++ {
		w := Wide(c)
		shifted := w
		shifted.Rsh(&shifted, WideFrac-Frac)
		diff := int64(shifted.Uint64()) - int64(Scalar(c))
		if diff < -1 || diff > 1 {
			t.Errorf("Wide(%s) disagrees with Scalar by %d", c, diff)
		}
	}
}

func TestAtanTables(t *testing.T) {
	for k := 0; k < 30; k++ {
		want := math.Atan(math.Ldexp(1, -k))
		if got := fixed.WorkFloat(Atan(k)); math.Abs(got-want) > 1e-15 {
			t.Errorf("Atan(%d) = %v, want %v", k, got, want)
		}
	}
	for k := uint(1); k < 30; k++ {
		want := math.Atanh(math.Ldexp(1, -int(k)))
		if got := fixed.WorkFloat(Atanh(k)); math.Abs(got-want) > 1e-15 {
			t.Errorf("Atanh(%d) = %v, want %v", k, got, want)
		}
	}
}

func TestHyperbolicSchedule(t *testing.T) {
	want := []uint{1, 2, 3, 4, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 13, 14, 15}
	for i, w := range want {
		if got := HypShift(i); got != w {
			t.Errorf("HypShift(%d) = %d, want %d", i, got, w)
		}
	}
	// 40 is the third repeated shift
	count := 0
	for i := 0; i < MaxIterations; i++ {
		if HypShift(i) == 40 {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestGains(t *testing.T) {
	kc, kh := 1.0, 1.0
	for n := 1; n <= 40; n++ {
		kc *= math.Sqrt(1 + math.Ldexp(1, -2*(n-1)))
		s := math.Ldexp(1, -int(HypShift(n-1)))
		kh *= math.Sqrt(1 - s*s)

		if got := fixed.WorkFloat(CircularGainInv(n)); math.Abs(got-1/kc) > 1e-14 {
			t.Errorf("CircularGainInv(%d) = %v, want %v", n, got, 1/kc)
		}
		if got := fixed.WorkFloat(HyperbolicGainInv(n)); math.Abs(got-1/kh) > 1e-14 {
			t.Errorf("HyperbolicGainInv(%d) = %v, want %v", n, got, 1/kh)
		}
	}
	require.InDelta(t, 0.6072529350088812, fixed.WorkFloat(CircularGainInv(MaxIterations)), 1e-15)
	require.InDelta(t, 1.2074970677630726, fixed.WorkFloat(HyperbolicGainInv(MaxIterations)), 1e-12)
}
