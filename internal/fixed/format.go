package fixed

import (
	"fmt"
	"math"
)

// Format fixes the total width W and integer width IW (sign bit included
// for signed values) of a fixed-point type. Implementations are zero-size
// types so formats are resolved at compile time.
type Format interface {
	Width() uint
	IntBits() uint
}

// Predefined formats, named Q<IW>_<F>.
type (
	Q8_8   struct{} // XS
	Q8_24  struct{} // S
	Q16_16 struct{} // M
	Q32_1  struct{} // L
	Q32_32 struct{} // XL
)

func (Q8_8) Width() uint     { return 16 }
func (Q8_8) IntBits() uint   { return 8 }
func (Q8_24) Width() uint    { return 32 }
func (Q8_24) IntBits() uint  { return 8 }
func (Q16_16) Width() uint   { return 32 }
func (Q16_16) IntBits() uint { return 16 }
func (Q32_1) Width() uint    { return 33 }
func (Q32_1) IntBits() uint  { return 32 }
func (Q32_32) Width() uint   { return 64 }
func (Q32_32) IntBits() uint { return 32 }

// Info describes a format at runtime.
type Info struct {
	Name    string
	Alias   string
	Width   uint
	IntBits uint
	Frac    uint
	ULP     float64
	Min     float64
	Max     float64
}

// Describe returns the runtime description of F.
func Describe[F Format]() Info {
	l := layoutOf[F]()
	return Info{
		Name:    fmt.Sprintf("Q%d_%d", l.iw, l.f),
		Width:   l.w,
		IntBits: l.iw,
		Frac:    l.f,
		ULP:     math.Ldexp(1, -int(l.f)),
		Min:     math.Ldexp(float64(l.min), -int(l.f)),
		Max:     math.Ldexp(float64(l.max), -int(l.f)),
	}
}

// Formats lists the predefined formats by their short alias.
func Formats() []Info {
	list := []Info{
		Describe[Q8_8](),
		Describe[Q8_24](),
		Describe[Q16_16](),
		Describe[Q32_1](),
		Describe[Q32_32](),
	}
	for i, alias := range []string{"XS", "S", "M", "L", "XL"} {
		list[i].Alias = alias
	}
	return list
}

// FracBits returns W-IW for F.
func FracBits[F Format]() uint {
	return layoutOf[F]().f
}

type layout struct {
	w, iw, f uint
	min, max int64
	umax     uint64
}

func layoutOf[F Format]() layout {
	var fm F
	w, iw := fm.Width(), fm.IntBits()
	if w == 0 || w > 64 || iw == 0 || iw > w {
		panic(fmt.Sprintf("fixed: invalid format W=%d IW=%d", w, iw))
	}
	l := layout{w: w, iw: iw, f: w - iw}
	l.max = int64(uint64(1)<<(w-1) - 1)
	l.min = -l.max - 1
	if w == 64 {
		l.umax = math.MaxUint64
	} else {
		l.umax = 1<<w - 1
	}
	return l
}

func (l layout) clamp(v int64) (int64, bool) {
	if v > l.max {
		return l.max, true
	}
	if v < l.min {
		return l.min, true
	}
	return v, false
}

func (l layout) clampU(v uint64) (uint64, bool) {
	if v > l.umax {
		return l.umax, true
	}
	return v, false
}
