package fxmath

import (
	"fmt"
	"strings"

	"github.com/san-kum/fxmath/internal/fixed"
)

// Func is the uniform shape of every registered function.
type Func[F fixed.Format] func(x, y fixed.Fixed[F], n int) (fixed.Fixed[F], error)

// Registry maps names such as "sin_lut" to functions over F.
type Registry[F fixed.Format] struct {
	funcs map[string]Func[F]
	names []string
}

func NewRegistry[F fixed.Format]() *Registry[F] {
	r := &Registry[F]{funcs: make(map[string]Func[F])}
	for _, op := range Ops() {
		for _, s := range op.Strategies() {
			name := Name(op, s)
			r.funcs[name] = func(x, y fixed.Fixed[F], n int) (fixed.Fixed[F], error) {
				return Eval(op, s, x, y, n)
			}
			r.names = append(r.names, name)
		}
	}
	return r
}

func (r *Registry[F]) Lookup(name string) (Func[F], error) {
	fn, ok := r.funcs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return fn, nil
}

// Names lists registered functions in operation order.
func (r *Registry[F]) Names() []string {
	return append([]string(nil), r.names...)
}

// Result is a function value converted for display.
type Result struct {
	Input    float64 // x after quantization
	Second   float64 // y after quantization
	Value    float64
	Exact    string
	Overflow bool
}

// EvalFloat quantizes x and y into F, evaluates, and converts back.
func EvalFloat[F fixed.Format](op Op, s Strategy, x, y float64, n int) (Result, error) {
	fx, fy := fixed.FromFloat[F](x), fixed.FromFloat[F](y)
	v, err := Eval(op, s, fx, fy, n)
	return Result{
		Input:    fx.Float64(),
		Second:   fy.Float64(),
		Value:    v.Float64(),
		Exact:    v.String(),
		Overflow: v.Overflow(),
	}, err
}

// Evaluator binds EvalFloat to a format chosen at runtime.
type Evaluator struct {
	Info     fixed.Info
	Eval     func(op Op, s Strategy, x, y float64, n int) (Result, error)
	Quantize func(x float64) float64
}

func evaluator[F fixed.Format](info fixed.Info) Evaluator {
	return Evaluator{
		Info:     info,
		Eval:     EvalFloat[F],
		Quantize: func(x float64) float64 { return fixed.FromFloat[F](x).Float64() },
	}
}

// ForFormat resolves a format by alias ("XS", "S", "M", "L", "XL") or
// name ("Q16_16").
func ForFormat(name string) (Evaluator, error) {
	var info fixed.Info
	for _, f := range fixed.Formats() {
		if strings.EqualFold(name, f.Alias) || strings.EqualFold(name, f.Name) {
			info = f
		}
	}
	switch info.Name {
	case "Q8_8":
		return evaluator[fixed.Q8_8](info), nil
	case "Q8_24":
		return evaluator[fixed.Q8_24](info), nil
	case "Q16_16":
		return evaluator[fixed.Q16_16](info), nil
	case "Q32_1":
		return evaluator[fixed.Q32_1](info), nil
	case "Q32_32":
		return evaluator[fixed.Q32_32](info), nil
	}
	return Evaluator{}, fmt.Errorf("unknown format: %s", name)
}
