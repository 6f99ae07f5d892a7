package fxmath

import "github.com/san-kum/fxmath/internal/fixed"

// The rounding family works directly on the raw bits.

func Ceil[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F]  { return x.Ceil() }
func Floor[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] { return x.Floor() }
func Trunc[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] { return x.Trunc() }

// Round rounds half to even.
func Round[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] { return x.Round() }

// Abs saturates the most negative value to the maximum.
func Abs[F fixed.Format](x fixed.Fixed[F]) fixed.Fixed[F] { return x.Abs() }
