// SPDX-License-Identifier: MIT

package arith

import (
	"math/big"
)

// Rational is the exact field of *big.Rat. Only an exact zero is negligible, so a
// solve over Rational never loses precision and never rejects a tiny nonzero pivot.
type Rational struct{}

var _ Field[*big.Rat] = Rational{}

func (Rational) Zero() *big.Rat { return new(big.Rat) }
func (Rational) One() *big.Rat { return big.NewRat(1, 1) }

// FromFloat converts v exactly (every finite float64 is a dyadic rational).
// Non-finite input yields zero.
func (Rational) FromFloat(v float64) *big.Rat {
	r := new(big.Rat)
	if r.SetFloat64(v) == nil {
		return new(big.Rat)
	}

	return r
}

func (Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rational) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

// Div returns a/b; a zero divisor yields zero instead of panicking.
func (Rational) Div(a, b *big.Rat) *big.Rat {
	if b.Sign() == 0 {
		return new(big.Rat)
	}

	return new(big.Rat).Quo(a, b)
}

func (Rational) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }
func (Rational) Conj(a *big.Rat) *big.Rat { return new(big.Rat).Set(a) }
func (Rational) IsNegligible(a *big.Rat) bool { return a.Sign() == 0 }
func (Rational) Magnitude(a *big.Rat) float64 {
	f, _ := new(big.Rat).Abs(a).Float64()

	return f
}

// BigFloat is the arbitrary-precision field of *big.Float at a fixed mantissa
// precision. Values with |a| <= Eps are negligible.
type BigFloat struct {
	Prec uint
	Eps  float64
}

// DefaultBigFloatPrec is the mantissa precision used by NewBigFloat.
const DefaultBigFloatPrec = 256

// NewBigFloat returns a BigFloat at prec bits; prec == 0 selects DefaultBigFloatPrec.
// The tolerance is 2^-(prec/2), small enough to accept any pivot a float64
// literal can express while still catching cancellation to (near) zero.
func NewBigFloat(prec uint) BigFloat {
	if prec == 0 {
		prec = DefaultBigFloatPrec
	}
	eps, _ := new(big.Float).SetMantExp(big.NewFloat(1), -int(prec/2)).Float64()

	return BigFloat{Prec: prec, Eps: eps}
}

var _ Field[*big.Float] = BigFloat{}

func (f BigFloat) newFloat() *big.Float { return new(big.Float).SetPrec(f.Prec) }

func (f BigFloat) Zero() *big.Float { return f.newFloat() }
func (f BigFloat) One() *big.Float { return f.newFloat().SetInt64(1) }

// FromFloat converts v; NaN yields zero (big.Float has no NaN).
func (f BigFloat) FromFloat(v float64) *big.Float {
	if v != v {
		return f.newFloat()
	}

	return f.newFloat().SetFloat64(v)
}

func (f BigFloat) Add(a, b *big.Float) *big.Float { return f.newFloat().Add(a, b) }
func (f BigFloat) Sub(a, b *big.Float) *big.Float { return f.newFloat().Sub(a, b) }
func (f BigFloat) Mul(a, b *big.Float) *big.Float { return f.newFloat().Mul(a, b) }

// Div returns a/b; a zero divisor yields zero instead of ±Inf.
func (f BigFloat) Div(a, b *big.Float) *big.Float {
	if b.Sign() == 0 {
		return f.newFloat()
	}

	return f.newFloat().Quo(a, b)
}

func (f BigFloat) Neg(a *big.Float) *big.Float { return f.newFloat().Neg(a) }
func (f BigFloat) Conj(a *big.Float) *big.Float { return f.newFloat().Set(a) }

func (f BigFloat) IsNegligible(a *big.Float) bool {
	if a.Sign() == 0 {
		return true
	}

	return new(big.Float).Abs(a).Cmp(big.NewFloat(f.Eps)) <= 0
}

func (f BigFloat) Magnitude(a *big.Float) float64 {
	v, _ := new(big.Float).Abs(a).Float64()

	return v
}
