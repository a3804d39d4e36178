// SPDX-License-Identifier: MIT

// Package matrix: sentinel error set (unified, consistent).
// This file defines the package-level sentinel errors shared by every kernel in
// the module (matrix, substitute, equation, factor). Algorithms MUST return these
// sentinels (optionally wrapped with an operation tag) and tests MUST check them
// via errors.Is / errors.As. No kernel panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and grep-ability.
// Callers add context with fmt.Errorf("ctx: %w", ErrX) at the outer boundary;
// errors.Is keeps matching the sentinel through any number of wraps.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil/shape -> dimension mismatch -> index range -> numeric (NaN/Inf) -> singular pivot.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row, column, pivot position) is outside
	// valid bounds. Public indexers and coefficient mutators MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes: vector length vs
	// system size, right-hand side rows vs triangular body, factor size vs chain size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingularPivot is returned when a pivot element is zero or numerically
	// indistinguishable from zero: Gauss-Seidel adjust, elementary factor
	// construction, LU/Cholesky refactorization, triangular substitution.
	// The kernel never retries; recovery (another pivot, refactorization) is the
	// caller's policy decision.
	ErrSingularPivot = errors.New("matrix: singular pivot")

	// ErrNotPositiveDefinite is returned by Cholesky when the input is not SPD.
	ErrNotPositiveDefinite = errors.New("matrix: not positive definite")
)

// PivotError reports where a singular pivot was met.
// It unwraps to ErrSingularPivot so both errors.Is and errors.As work.
type PivotError struct {
	Op    string  // kernel that hit the pivot (e.g. "Adjust", "Elementary", "Forwards")
	Index int     // row / pivot position of the offending element
	Value float64 // observed magnitude (0 for non-float representations)
}

// Error implements error.
func (e *PivotError) Error() string {
	return fmt.Sprintf("%s: pivot %d (|%g|): %v", e.Op, e.Index, e.Value, ErrSingularPivot)
}

// Unwrap exposes the sentinel for errors.Is.
func (e *PivotError) Unwrap() error { return ErrSingularPivot }

// NewPivotError builds a *PivotError for op at index with observed value v.
func NewPivotError(op string, index int, v float64) error {
	return &PivotError{Op: op, Index: index, Value: v}
}
