package fxmath

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/fxmath/internal/fixed"
)

// ErrUnsupported indicates an operation/strategy pair that does not exist.
var ErrUnsupported = errors.New("fxmath: unsupported operation or strategy")

// Strategy selects how a function is evaluated.
type Strategy uint8

const (
	LUT Strategy = iota + 1
	Taylor
	CORDIC
	Rational
	Exact
)

var strategyNames = map[Strategy]string{
	LUT:      "lut",
	Taylor:   "taylor",
	CORDIC:   "cordic",
	Rational: "rational",
	Exact:    "exact",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: strategy %q", ErrUnsupported, name)
}

// Op is an elementary function.
type Op uint8

const (
	OpSin Op = iota + 1
	OpCos
	OpTan
	OpSqrt
	OpAtan
	OpAsin
	OpAcos
	OpExp
	OpLn
	OpLog2
	OpLog
	OpPow
	OpSinh
	OpCosh
	OpTanh
	OpCeil
	OpFloor
	OpRound
	OpAbs
	OpTrunc
)

type opInfo struct {
	name       string
	strategies []Strategy
	binary     bool
}

var ops = map[Op]opInfo{
	OpSin:   {"sin", []Strategy{LUT, Taylor, CORDIC}, false},
	OpCos:   {"cos", []Strategy{LUT, Taylor, CORDIC}, false},
	OpTan:   {"tan", []Strategy{LUT, Taylor, CORDIC}, false},
	OpSqrt:  {"sqrt", []Strategy{CORDIC}, false},
	OpAtan:  {"atan", []Strategy{Rational, CORDIC}, false},
	OpAsin:  {"asin", []Strategy{CORDIC}, false},
	OpAcos:  {"acos", []Strategy{CORDIC}, false},
	OpExp:   {"exp", []Strategy{Taylor, CORDIC}, false},
	OpLn:    {"ln", []Strategy{LUT, Taylor, CORDIC}, false},
	OpLog2:  {"log2", []Strategy{LUT, Taylor, CORDIC}, false},
	OpLog:   {"log", []Strategy{LUT, Taylor, CORDIC}, true},
	OpPow:   {"pow", []Strategy{LUT, Taylor, CORDIC}, true},
	OpSinh:  {"sinh", []Strategy{CORDIC}, false},
	OpCosh:  {"cosh", []Strategy{CORDIC}, false},
	OpTanh:  {"tanh", []Strategy{CORDIC}, false},
	OpCeil:  {"ceil", []Strategy{Exact}, false},
	OpFloor: {"floor", []Strategy{Exact}, false},
	OpRound: {"round", []Strategy{Exact}, false},
	OpAbs:   {"abs", []Strategy{Exact}, false},
	OpTrunc: {"trunc", []Strategy{Exact}, false},
}

// Ops lists every operation in declaration order.
func Ops() []Op {
	list := make([]Op, 0, len(ops))
	for op := OpSin; op <= OpTrunc; op++ {
		list = append(list, op)
	}
	return list
}

func (o Op) String() string {
	if info, ok := ops[o]; ok {
		return info.name
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Binary reports whether the op takes a second operand (log base, pow
// exponent).
func (o Op) Binary() bool { return ops[o].binary }

// Strategies lists the strategies o supports.
func (o Op) Strategies() []Strategy { return ops[o].strategies }

func (o Op) Supports(s Strategy) bool {
	for _, st := range ops[o].strategies {
		if st == s {
			return true
		}
	}
	return false
}

func ParseOp(name string) (Op, error) {
	for op, info := range ops {
		if strings.EqualFold(info.name, name) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: function %q", ErrUnsupported, name)
}

// Name returns the registry name of op under s, e.g. "sin_lut" or "floor".
func Name(op Op, s Strategy) string {
	if s == Exact {
		return op.String()
	}
	return op.String() + "_" + s.String()
}

// ParseName splits a registry name into op and strategy.
func ParseName(name string) (Op, Strategy, error) {
	base, strat, found := strings.Cut(name, "_")
	op, err := ParseOp(base)
	if err != nil {
		return 0, 0, err
	}
	s := Exact
	switch {
	case found:
		if s, err = ParseStrategy(strat); err != nil {
			return 0, 0, err
		}
	case !op.Supports(Exact):
		// a bare name picks the op's first strategy: "sqrt", "log", "pow"
		s = op.Strategies()[0]
	}
	if !op.Supports(s) {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return op, s, nil
}

// Eval dispatches op under s. For OpLog y is the base; for OpPow x is the
// base and y the exponent. n is the CORDIC iteration count and is ignored
// by other strategies.
func Eval[F fixed.Format](op Op, s Strategy, x, y fixed.Fixed[F], n int) (fixed.Fixed[F], error) {
	if !op.Supports(s) {
		return fixed.Fixed[F]{}, fmt.Errorf("%w: %s", ErrUnsupported, Name(op, s))
	}

	switch op {
	case OpSin:
		switch s {
		case LUT:
			return SinLUT(x), nil
		case Taylor:
			return SinTaylor(x), nil
		}
		return SinCORDIC(x, n), nil
	case OpCos:
		switch s {
		case LUT:
			return CosLUT(x), nil
		case Taylor:
			return CosTaylor(x), nil
		}
		return CosCORDIC(x, n), nil
	case OpTan:
		switch s {
		case LUT:
			return TanLUT(x)
		case Taylor:
			return TanTaylor(x)
		}
		return TanCORDIC(x, n)
	case OpSqrt:
		u, err := fixed.Unsigned(x)
		if err != nil {
			return fixed.Fixed[F]{}, fixed.NewDomainError("sqrt", x.Float64(), "negative input")
		}
		return fixed.Signed(SqrtCORDIC(u, n)), nil
	case OpAtan:
		if s == Rational {
			return AtanRational(x), nil
		}
		return AtanCORDIC(x, n), nil
	case OpAsin:
		return AsinCORDIC(x, n)
	case OpAcos:
		return AcosCORDIC(x, n)
	case OpExp:
		if s == Taylor {
			return ExpTaylor(x), nil
		}
		return ExpCORDIC(x, n), nil
	case OpLn, OpLog2:
		u, err := fixed.Unsigned(x)
		if err != nil {
			return fixed.Fixed[F]{}, fixed.NewDomainError(op.String(), x.Float64(), "negative input")
		}
		eval := lnWork
		if op == OpLog2 {
			eval = log2Work
		}
		return logarithm(op.String(), u, s, n, eval)
	case OpLog:
		u, err := fixed.Unsigned(x)
		if err != nil {
			return fixed.Fixed[F]{}, fixed.NewDomainError("log", x.Float64(), "negative input")
		}
		b, err := fixed.Unsigned(y)
		if err != nil {
			return fixed.Fixed[F]{}, fixed.NewDomainError("log", y.Float64(), "non-positive base")
		}
		return Log(u, b, s, n)
	case OpPow:
		return Pow(x, y, s, n)
	case OpSinh:
		return SinhCORDIC(x, n), nil
	case OpCosh:
		return CoshCORDIC(x, n), nil
	case OpTanh:
		return TanhCORDIC(x, n), nil
	case OpCeil:
		return x.Ceil(), nil
	case OpFloor:
		return x.Floor(), nil
	case OpRound:
		return x.Round(), nil
	case OpAbs:
		return x.Abs(), nil
	case OpTrunc:
		return x.Trunc(), nil
	}
	return fixed.Fixed[F]{}, fmt.Errorf("%w: %s", ErrUnsupported, op)
}
