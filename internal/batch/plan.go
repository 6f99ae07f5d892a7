package batch

import (
	"math"

	"github.com/san-kum/fxmath/internal/fxmath"
)

// Spec is one row of the batch: a function under a strategy and its
// float64 reference.
type Spec struct {
	Name     string
	Op       fxmath.Op
	Strategy fxmath.Strategy
	Ref      func(x, base float64) float64
}

func unary(f func(float64) float64) func(x, base float64) float64 {
	return func(x, _ float64) float64 { return f(x) }
}

// Plan is the fixed 27-entry order of a batch run.
var Plan = []Spec{
	{"sin_taylor", fxmath.OpSin, fxmath.Taylor, unary(math.Sin)},
	{"sin_lut", fxmath.OpSin, fxmath.LUT, unary(math.Sin)},
	{"sin_cordic", fxmath.OpSin, fxmath.CORDIC, unary(math.Sin)},
	{"cos_taylor", fxmath.OpCos, fxmath.Taylor, unary(math.Cos)},
	{"cos_lut", fxmath.OpCos, fxmath.LUT, unary(math.Cos)},
	{"cos_cordic", fxmath.OpCos, fxmath.CORDIC, unary(math.Cos)},
	{"tan_taylor", fxmath.OpTan, fxmath.Taylor, unary(math.Tan)},
	{"tan_lut", fxmath.OpTan, fxmath.LUT, unary(math.Tan)},
	{"tan_cordic", fxmath.OpTan, fxmath.CORDIC, unary(math.Tan)},
	{"sqrt", fxmath.OpSqrt, fxmath.CORDIC, unary(math.Sqrt)},
	{"atan_rational", fxmath.OpAtan, fxmath.Rational, unary(math.Atan)},
	{"atan_cordic", fxmath.OpAtan, fxmath.CORDIC, unary(math.Atan)},
	{"exp_taylor", fxmath.OpExp, fxmath.Taylor, unary(math.Exp)},
	{"exp_cordic", fxmath.OpExp, fxmath.CORDIC, unary(math.Exp)},
	{"ln_lut", fxmath.OpLn, fxmath.LUT, unary(math.Log)},
	{"ln_cordic", fxmath.OpLn, fxmath.CORDIC, unary(math.Log)},
	{"log", fxmath.OpLog, fxmath.LUT, func(x, base float64) float64 { return math.Log(x) / math.Log(base) }},
	{"pow", fxmath.OpPow, fxmath.Taylor, func(x, base float64) float64 { return math.Pow(base, x) }},
	{"ceil", fxmath.OpCeil, fxmath.Exact, unary(math.Ceil)},
	{"floor", fxmath.OpFloor, fxmath.Exact, unary(math.Floor)},
	{"round", fxmath.OpRound, fxmath.Exact, unary(math.RoundToEven)},
	{"abs", fxmath.OpAbs, fxmath.Exact, unary(math.Abs)},
	{"trunc", fxmath.OpTrunc, fxmath.Exact, unary(math.Trunc)},
	{"asin_cordic", fxmath.OpAsin, fxmath.CORDIC, unary(math.Asin)},
	{"acos_cordic", fxmath.OpAcos, fxmath.CORDIC, unary(math.Acos)},
	{"log2_lut", fxmath.OpLog2, fxmath.LUT, unary(math.Log2)},
	{"log2_cordic", fxmath.OpLog2, fxmath.CORDIC, unary(math.Log2)},
}
