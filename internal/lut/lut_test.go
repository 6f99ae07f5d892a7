package lut

import (
	"math"
	"sync"
	"testing"

	"github.com/san-kum/fxmath/internal/fixed"
)

func TestBitsFor(t *testing.T) {
	tests := []struct {
		frac uint
		want uint
	}{
		{0, MinBits},
		{8, MinBits},
		{16, 10},
		{24, 14},
		{32, MaxBits},
		{63, MaxBits},
	}
	for _, tt := range tests {
		if got := BitsFor(tt.frac); got != tt.want {
			t.Errorf("BitsFor(%d) = %d, want %d", tt.frac, got, tt.want)
		}
	}
}

func TestSinTableAccuracy(t *testing.T) {
	for _, b := range []uint{6, 10, 14} {
		tab := SinTable(b)
		if tab.Size() != 1<<b+1 {
			t.Fatalf("SinTable(%d).Size() = %d", b, tab.Size())
		}
		h := math.Pi / 2 / float64(int(1)<<b)
		interpBound := h*h/8 + 1e-15

		for i := 0; i <= 1000; i++ {
			x := math.Pi / 2 * float64(i) / 1000
			w := fixed.WorkFromFloat(x)
			if err := math.Abs(fixed.WorkFloat(tab.Interp(w)) - math.Sin(x)); err > interpBound {
				t.Errorf("b=%d Interp(%v) error %v > %v", b, x, err, interpBound)
			}
		}
	}
}

func TestCosAndLog2(t *testing.T) {
	for i := 0; i <= 200; i++ {
		x := math.Pi / 2 * float64(i) / 200
		if got := fixed.WorkFloat(Cos(fixed.WorkFromFloat(x), 12)); math.Abs(got-math.Cos(x)) > 1e-7 {
			t.Errorf("Cos(%v) = %v, want %v", x, got, math.Cos(x))
		}

		m := 1 + float64(i)/200
		if got := fixed.WorkFloat(Log2(fixed.WorkFromFloat(m), 12)); math.Abs(got-math.Log2(m)) > 1e-7 {
			t.Errorf("Log2(%v) = %v, want %v", m, got, math.Log2(m))
		}
	}
}

func TestEndpoints(t *testing.T) {
	tab := Log2Table(8)
	if got := tab.Interp(fixed.WorkOne); got != 0 {
		t.Errorf("log2(1) = %v", fixed.WorkFloat(got))
	}
	if got := tab.Interp(2 * fixed.WorkOne); got != fixed.WorkOne {
		t.Errorf("log2(2) = %v", fixed.WorkFloat(got))
	}
	// out of range clamps to the end samples
	if got := tab.Interp(0); got != 0 {
		t.Errorf("log2 below range = %v", fixed.WorkFloat(got))
	}
	if got := tab.Interp(3 * fixed.WorkOne); got != fixed.WorkOne {
		t.Errorf("log2 above range = %v", fixed.WorkFloat(got))
	}
}

func TestTablesBuildOnce(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Table, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = SinTable(9)
		}(i)
	}
	wg.Wait()
	for i := range got {
		if got[i] != got[0] {
			t.Fatal("SinTable returned distinct tables")
		}
	}
}
