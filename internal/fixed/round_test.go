package fixed

import (
	"math"
	"testing"
)

// Every Q8_8 value is checked against float64 rounding.
func TestRoundingExhaustive(t *testing.T) {
	for raw := int64(-32768); raw <= 32767; raw++ {
		x := FromRaw[Q8_8](raw)
		v := x.Float64()

		checks := []struct {
			name string
			got  Fixed[Q8_8]
			want float64
		}{
			{"Floor", x.Floor(), math.Floor(v)},
			{"Ceil", x.Ceil(), math.Ceil(v)},
			{"Trunc", x.Trunc(), math.Trunc(v)},
			{"Round", x.Round(), math.RoundToEven(v)},
		}
		for _, c := range checks {
			if c.got.Overflow() {
				if c.want <= Max[Q8_8]().Float64() {
					t.Errorf("%s(%v) flagged overflow for representable %v", c.name, v, c.want)
				}
				continue
			}
			if c.got.Float64() != c.want {
				t.Errorf("%s(%v) = %v, want %v", c.name, v, c.got.Float64(), c.want)
			}
		}

		if x.Floor().Float64() > v || x.Ceil().Float64() < v {
			t.Errorf("floor/ceil do not bracket %v", v)
		}
	}
}

func TestRoundingNarrowFormat(t *testing.T) {
	tests := []struct {
		in    float64
		floor float64
		round float64
	}{
		{0.5, 0, 0},
		{0.75, 0, 1},
		{-0.5, -1, 0},
		{-0.75, -1, -1},
	}
	for _, tt := range tests {
		x := FromFloat[Q1_63](tt.in)
		if got := x.Floor().Float64(); got != tt.floor {
			t.Errorf("Floor(%v) = %v, want %v", tt.in, got, tt.floor)
		}
		got := x.Round()
		if tt.round == 1 {
			if !got.Overflow() || !got.Equal(Max[Q1_63]()) {
				t.Errorf("Round(%v) = %v, want saturated max", tt.in, got)
			}
			continue
		}
		if got.Float64() != tt.round {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got.Float64(), tt.round)
		}
	}
}

type Q1_63 struct{}

func (Q1_63) Width() uint   { return 64 }
func (Q1_63) IntBits() uint { return 1 }

func TestIntegerPredicates(t *testing.T) {
	tests := []struct {
		in         float64
		integer    bool
		oddInteger bool
	}{
		{3, true, true},
		{-3, true, true},
		{4, true, false},
		{0, true, false},
		{2.5, false, false},
	}
	for _, tt := range tests {
		x := FromFloat[Q16_16](tt.in)
		if x.IsInteger() != tt.integer || x.IsOddInteger() != tt.oddInteger {
			t.Errorf("%v: IsInteger=%v IsOddInteger=%v", tt.in, x.IsInteger(), x.IsOddInteger())
		}
	}
}
