// SPDX-License-Identifier: MIT

// Package arith: the numeric capability trait.
//
// Purpose:
//   - Let one elimination loop run over float64, complex128, exact rationals and
//     arbitrary-precision floats without duplicating the algorithm per representation.
//   - Centralize the notion of "negligible" so that singular-pivot detection is
//     decided by the number type, not by the kernel.
//
// Contract:
//   - Operations never mutate their arguments; pointer-backed types return fresh values.
//   - IsNegligible(Zero()) is always true.

package arith

// Field is the arithmetic a triangular solve needs from a scalar type T.
type Field[T any] interface {
	// Zero returns the additive identity.
	Zero() T
	// One returns the multiplicative identity.
	One() T
	// FromFloat converts a float64 literal into T.
	FromFloat(v float64) T

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	// Div returns a/b. Callers check IsNegligible(b) first; behavior on a
	// negligible divisor is representation-defined.
	Div(a, b T) T
	Neg(a T) T
	// Conj returns the complex conjugate; the identity for real types.
	Conj(a T) T

	// IsNegligible reports whether a must be treated as zero when used as a pivot.
	IsNegligible(a T) bool
	// Magnitude returns |a| rounded to float64, for diagnostics only.
	Magnitude(a T) float64
}

// Dot returns Σ a[i]*b[i] over the common prefix of a and b.
func Dot[T any](f Field[T], a, b []T) T {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	acc := f.Zero()
	for i := 0; i < n; i++ {
		acc = f.Add(acc, f.Mul(a[i], b[i]))
	}

	return acc
}

// FromFloats converts a float64 slice into a fresh []T.
func FromFloats[T any](f Field[T], vs []float64) []T {
	out := make([]T, len(vs))
	for i, v := range vs {
		out[i] = f.FromFloat(v)
	}

	return out
}
