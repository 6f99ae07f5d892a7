package analysis

import (
	"math"

	"github.com/san-kum/fxmath/internal/fxmath"
)

// Reference returns the float64 counterpart of op. For binary ops y is
// the log base or the pow base.
func Reference(op fxmath.Op) func(x, y float64) float64 {
	unary := func(f func(float64) float64) func(x, y float64) float64 {
		return func(x, _ float64) float64 { return f(x) }
	}
	switch op {
	case fxmath.OpSin:
		return unary(math.Sin)
	case fxmath.OpCos:
		return unary(math.Cos)
	case fxmath.OpTan:
		return unary(math.Tan)
	case fxmath.OpSqrt:
		return unary(math.Sqrt)
	case fxmath.OpAtan:
		return unary(math.Atan)
	case fxmath.OpAsin:
		return unary(math.Asin)
	case fxmath.OpAcos:
		return unary(math.Acos)
	case fxmath.OpExp:
		return unary(math.Exp)
	case fxmath.OpLn:
		return unary(math.Log)
	case fxmath.OpLog2:
		return unary(math.Log2)
	case fxmath.OpLog:
		return func(x, y float64) float64 { return math.Log(x) / math.Log(y) }
	case fxmath.OpPow:
		return func(x, y float64) float64 { return math.Pow(y, x) }
	case fxmath.OpSinh:
		return unary(math.Sinh)
	case fxmath.OpCosh:
		return unary(math.Cosh)
	case fxmath.OpTanh:
		return unary(math.Tanh)
	case fxmath.OpCeil:
		return unary(math.Ceil)
	case fxmath.OpFloor:
		return unary(math.Floor)
	case fxmath.OpRound:
		return unary(math.RoundToEven)
	case fxmath.OpAbs:
		return unary(math.Abs)
	case fxmath.OpTrunc:
		return unary(math.Trunc)
	}
	return func(float64, float64) float64 { return math.NaN() }
}
