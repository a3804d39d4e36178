// SPDX-License-Identifier: MIT

// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the module.
//   - Avoid any logic duplication; each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - Use NewIdentity to seed a basis; NewDense builds the zero matrix.
//   - ResidualInf is the verification hook tests use to check a solve against A·x = b.

package matrix

import (
	"fmt"
	"math"
)

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Determinism: fixed i-loop; single write per diagonal cell.
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
//
// AI-Hints: The seed basis of an empty factor chain in the simplex setting.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// T is an alias for Transpose: returns mᵀ.
func T(m Matrix) (*Dense, error) { return Transpose(m) }

// ResidualInf returns ‖A·x − b‖∞.
// Errors: those of MatVec, plus ErrDimensionMismatch when len(b) != A.Rows().
func ResidualInf(a Matrix, x, b []float64) (float64, error) {
	ax, err := MatVec(a, x)
	if err != nil {
		return 0, err
	}
	if len(b) != len(ax) {
		return 0, fmt.Errorf("ResidualInf: %w", ErrDimensionMismatch)
	}
	var worst float64
	for i := range ax {
		worst = math.Max(worst, math.Abs(ax[i]-b[i]))
	}

	return worst, nil
}
