// Package fxmath provides elementary functions over fixed-point values.
//
// Every function is offered under one or more evaluation strategies:
// lookup tables (LUT), truncated power series (Taylor), shift-and-add
// iterations (CORDIC), a rational approximation for atan, and exact bit
// operations for the rounding family. Entry points are named
// <Function><Strategy>, for example SinLUT or ExpCORDIC, and are generic
// over the fixed-point format. CORDIC entry points take the iteration count.
//
// Arguments are reduced exactly before evaluation and all intermediate
// work happens in a 56-bit fractional working format, so the only
// rounding into the caller's format happens once at the end.
package fxmath
