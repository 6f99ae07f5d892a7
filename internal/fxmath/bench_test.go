package fxmath

import (
	"testing"

	"github.com/san-kum/fxmath/internal/fixed"
)

var sink fixed.Fixed[M]

func BenchmarkSinLUT(b *testing.B) {
	x := q(0.7)
	SinLUT(x)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = SinLUT(x)
	}
}

func BenchmarkSinTaylor(b *testing.B) {
	x := q(0.7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = SinTaylor(x)
	}
}

func BenchmarkSinCORDIC16(b *testing.B) {
	x := q(0.7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = SinCORDIC(x, 16)
	}
}

func BenchmarkSinCORDIC32(b *testing.B) {
	x := q(0.7)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = SinCORDIC(x, 32)
	}
}

func BenchmarkExpTaylor(b *testing.B) {
	x := q(3.3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink = ExpTaylor(x)
	}
}

func BenchmarkLnCORDIC(b *testing.B) {
	x := uq(12.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = LnCORDIC(x, 24)
	}
}

func BenchmarkRegistryLookup(b *testing.B) {
	reg := NewRegistry[M]()
	fn, _ := reg.Lookup("atan_cordic")
	x := q(2.5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink, _ = fn(x, x, 16)
	}
}
