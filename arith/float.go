// SPDX-License-Identifier: MIT

package arith

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/linsys/matrix"
)

// Float64 is the IEEE-754 double field. Eps is the absolute pivot tolerance:
// |a| <= Eps is negligible and an exact zero always is.
type Float64 struct {
	Eps float64
}

// NewFloat64 returns a Float64 field using matrix.DefaultEpsilon.
func NewFloat64() Float64 { return Float64{Eps: matrix.DefaultEpsilon} }

var _ Field[float64] = Float64{}

func (Float64) Zero() float64 { return 0 }
func (Float64) One() float64 { return 1 }
func (Float64) FromFloat(v float64) float64 { return v }
func (Float64) Add(a, b float64) float64 { return a + b }
func (Float64) Sub(a, b float64) float64 { return a - b }
func (Float64) Mul(a, b float64) float64 { return a * b }
func (Float64) Div(a, b float64) float64 { return a / b }
func (Float64) Neg(a float64) float64 { return -a }
func (Float64) Conj(a float64) float64 { return a }
func (Float64) Magnitude(a float64) float64 { return math.Abs(a) }
func (f Float64) IsNegligible(a float64) bool { return matrix.IsSmall(a, f.Eps) }

// Complex128 is the double-precision complex field. Conj negates the imaginary part.
type Complex128 struct {
	Eps float64
}

// NewComplex128 returns a Complex128 field using matrix.DefaultEpsilon.
func NewComplex128() Complex128 { return Complex128{Eps: matrix.DefaultEpsilon} }

var _ Field[complex128] = Complex128{}

func (Complex128) Zero() complex128 { return 0 }
func (Complex128) One() complex128 { return 1 }
func (Complex128) FromFloat(v float64) complex128 { return complex(v, 0) }
func (Complex128) Add(a, b complex128) complex128 { return a + b }
func (Complex128) Sub(a, b complex128) complex128 { return a - b }
func (Complex128) Mul(a, b complex128) complex128 { return a * b }
func (Complex128) Div(a, b complex128) complex128 { return a / b }
func (Complex128) Neg(a complex128) complex128 { return -a }
func (Complex128) Conj(a complex128) complex128 { return cmplx.Conj(a) }
func (Complex128) Magnitude(a complex128) float64 { return cmplx.Abs(a) }
func (f Complex128) IsNegligible(a complex128) bool { return matrix.IsSmall(cmplx.Abs(a), f.Eps) }
