package fixed

import (
	"math"
	"testing"
)

func TestRoundShift(t *testing.T) {
	tests := []struct {
		v    int64
		s    uint
		want int64
	}{
		{5, 1, 2},
		{7, 1, 4},
		{-5, 1, -2},
		{-7, 1, -4},
		{6, 2, 2},
		{10, 2, 2},
		{-6, 2, -2},
		{math.MinInt64, 64, 0},
		{123, 0, 123},
	}
	for _, tt := range tests {
		if got := RoundShift(tt.v, tt.s); got != tt.want {
			t.Errorf("RoundShift(%d, %d) = %d, want %d", tt.v, tt.s, got, tt.want)
		}
	}
}

func TestMulShiftWide(t *testing.T) {
	// (2^40)·(2^40)/2^70 = 2^10 needs the high word.
	got, ovf := MulShift(1<<40, 1<<40, 70)
	if got != 1<<10 || ovf {
		t.Errorf("MulShift = %d (ovf %v), want 1024", got, ovf)
	}

	got, ovf = MulShift(-(1 << 40), 1<<40, 64)
	if got != -(1<<16) || ovf {
		t.Errorf("MulShift = %d (ovf %v), want -65536", got, ovf)
	}

	_, ovf = MulShift(math.MaxInt64, math.MaxInt64, 10)
	if !ovf {
		t.Error("MulShift did not report overflow")
	}
}

func TestDivShift(t *testing.T) {
	got, _ := DivShift(1, 3, 56)
	want := int64(1<<56) / 3
	if got != want {
		t.Errorf("DivShift(1, 3, 56) = %d, want %d", got, want)
	}

	got, _ = DivShift(-1, 2, 0)
	if got != 0 {
		t.Errorf("DivShift(-1, 2, 0) = %d, want 0 (half to even)", got)
	}

	_, ovf := DivShift(1<<40, 1, 40)
	if !ovf {
		t.Error("DivShift did not report overflow")
	}
}

func TestWorkRoundTrip(t *testing.T) {
	x := FromFloat[Q16_16](-3.140625)
	w, ovf := x.ToWork()
	if ovf {
		t.Fatal("ToWork overflowed")
	}
	if WorkFloat(w) != -3.140625 {
		t.Errorf("WorkFloat = %v", WorkFloat(w))
	}
	if back := FromWork[Q16_16](w); !back.Equal(x) {
		t.Errorf("FromWork = %v, want %v", back, x)
	}

	if _, ovf := FromInt[Q16_16](200).ToWork(); !ovf {
		t.Error("ToWork(200) should not fit the working range")
	}
}

func TestFromWorkScaled(t *testing.T) {
	one := WorkOne

	if got := FromWorkScaled[Q16_16](one, 10).Float64(); got != 1024 {
		t.Errorf("2^10 = %v", got)
	}
	if got := FromWorkScaled[Q16_16](one, -16).Raw(); got != 1 {
		t.Errorf("2^-16 raw = %d, want 1", got)
	}
	if got := FromWorkScaled[Q16_16](one, -40); !got.IsZero() || got.Overflow() {
		t.Errorf("2^-40 = %v, want 0 without overflow", got)
	}
	if got := FromWorkScaled[Q16_16](one, 40); !got.Overflow() {
		t.Errorf("2^40 = %v, want saturation", got)
	}
	if got := UFromWorkScaled[Q16_16](one, 15); got.Float64() != 32768 {
		t.Errorf("unsigned 2^15 = %v", got)
	}
	if got := UFromWork[Q16_16](-one); !got.Overflow() || !got.IsZero() {
		t.Errorf("unsigned -1 = %v, want flagged zero", got)
	}
}

func TestDivWork(t *testing.T) {
	q, ovf := DivWork(WorkOne, 4*WorkOne)
	if ovf || q != WorkOne/4 {
		t.Errorf("DivWork(1, 4) = %v", WorkFloat(q))
	}
	if _, ovf := DivWork(WorkOne, 0); !ovf {
		t.Error("DivWork by zero should saturate")
	}
}
