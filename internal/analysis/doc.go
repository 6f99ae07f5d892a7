// Package analysis measures the accuracy of the fixed-point functions.
//
//   - [Sweep]: evaluates one function/strategy over an input range and
//     summarizes the error against float64 references
//   - [Convergence]: error of a CORDIC function as the iteration count grows
//   - [PowerSpectrum]: spectrum of a sweep's error signal, which exposes the
//     periodic error of table lookups and angle quantization
//
// # Example
//
//	res, err := analysis.Sweep(analysis.SweepConfig{
//	    Format: "M", Op: fxmath.OpSin, Strategy: fxmath.LUT,
//	    Start: -math.Pi, Limit: math.Pi, Steps: 1024,
//	})
//	fmt.Println(res.Stats.MaxULP)
package analysis
