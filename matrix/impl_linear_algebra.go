// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra kernels the rest of the module
// leans on: matrix products used to verify solves, and the direct factorizations
// (LU with partial pivoting, Cholesky) that serve as refactorization providers for
// the product-form basis inverse.
//
// Purpose:
//   - Declare canonical kernels (signatures) used across the module.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - All kernels use central validators and return sentinels wrapped via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opMatTVec   = "MatTVec"
	opLU        = "LU"
	opCholesky  = "Cholesky"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it is already *Dense, otherwise a *Dense copy read
// through At. Kernels then run a single flat-slice implementation.
func toDense(m Matrix, tag string) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(tag, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j over row-major strides, skipping zero A[i,k].
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a, opMul)
	if err != nil {
		return nil, err
	}
	db, err := toDense(b, opMul)
	if err != nil {
		return nil, err
	}
	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, k, j                            int
		av                                 float64
		rowOffsetA, rowOffsetB, rowOffsetR int
	)
	for i = 0; i < aRows; i++ {
		rowOffsetA = i * aCols
		rowOffsetR = i * bCols
		for k = 0; k < aCols; k++ {
			av = da.data[rowOffsetA+k]
			if av == 0 {
				continue // skip zero for performance
			}
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOffsetR+j] += av * db.data[rowOffsetB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	dm, err := toDense(m, opTranspose)
	if err != nil {
		return nil, err
	}
	rows, cols := dm.r, dm.c
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m, opMatVec)
	if err != nil {
		return nil, err
	}
	y := make([]float64, d.r)
	var (
		i, j, base int
		acc, xv    float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			xv = x[j]
			if xv != 0 { // skip zero multiplications
				acc += d.data[base+j] * xv
			}
		}
		y[i] = acc
	}

	return y, nil
}

// MatTVec computes y = mᵀ * x without materializing the transpose.
// Contract: len(x) == m.Rows(). Complexity: O(r*c).
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	d, err := toDense(m, opMatTVec)
	if err != nil {
		return nil, err
	}
	y := make([]float64, d.c)
	var (
		i, j, base int
		xv         float64
	)
	for i = 0; i < d.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue
		}
		base = i * d.c
		for j = 0; j < d.c; j++ {
			y[j] += d.data[base+j] * xv
		}
	}

	return y, nil
}

// LUResult holds a partially pivoted factorization P·A = L·U.
//   - L is unit lower triangular (ones on the diagonal are stored explicitly).
//   - U is upper triangular.
//   - Perm[i] is the original row of A that ended up in row i of P·A.
type LUResult struct {
	L, U *Dense
	Perm []int
}

// LU computes P·A = L·U by Gaussian elimination with partial (row) pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy A into U; L = I; Perm = identity.
//   - Stage 2: For each column k pick the row r ≥ k with the largest |U[r,k]|,
//     swap rows k↔r in U, the first k columns of L, and Perm; then eliminate below.
//
// Behavior highlights:
//   - Deterministic: ties in the pivot search keep the lowest row index.
//   - Input m is read-only; L, U are freshly allocated.
//
// Inputs:
//   - m: square Matrix (n×n).
//   - opts: numeric policy; WithEpsilon sets the singular-pivot tolerance.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, *PivotError (ErrSingularPivot) when the best
//     available pivot of a column is negligible.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - This is the default refactorization provider of the factor chain; solve with the
//     substitute engine (forward on L with Unit, backward on U) after permuting the rhs.
func LU(m Matrix, opts ...Option) (*LUResult, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)
	src, err := toDense(m, opLU)
	if err != nil {
		return nil, err
	}

	n := src.r
	U := src.Clone().(*Dense)
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	perm := make([]int, n)
	for i := 0; i < n; i++ {
		perm[i] = i
		L.data[i*n+i] = 1.0
	}

	var (
		i, j, k, maxRow  int
		maxAbs, v, pivot float64
		factor           float64
		baseK, baseI     int
	)
	for k = 0; k < n; k++ {
		// Partial pivot search in column k.
		maxRow = k
		maxAbs = math.Abs(U.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(U.data[i*n+k]); v > maxAbs {
				maxAbs, maxRow = v, i
			}
		}
		if IsSmall(maxAbs, o.eps) {
			return nil, matrixErrorf(opLU, NewPivotError(opLU, k, maxAbs))
		}

		if maxRow != k {
			swapRows(U, k, maxRow)
			for j = 0; j < k; j++ { // only the filled multipliers of L move
				L.data[k*n+j], L.data[maxRow*n+j] = L.data[maxRow*n+j], L.data[k*n+j]
			}
			perm[k], perm[maxRow] = perm[maxRow], perm[k]
		}

		baseK = k * n
		pivot = U.data[baseK+k]
		for i = k + 1; i < n; i++ {
			baseI = i * n
			factor = U.data[baseI+k] / pivot
			if factor == 0 {
				continue
			}
			L.data[baseI+k] = factor
			U.data[baseI+k] = 0 // explicit zero below the diagonal
			for j = k + 1; j < n; j++ {
				U.data[baseI+j] -= factor * U.data[baseK+j]
			}
		}
	}

	return &LUResult{L: L, U: U, Perm: perm}, nil
}

// swapRows exchanges rows a and b of d in place.
func swapRows(d *Dense, a, b int) {
	ra := d.data[a*d.c : (a+1)*d.c]
	rb := d.data[b*d.c : (b+1)*d.c]
	for j := range ra {
		ra[j], rb[j] = rb[j], ra[j]
	}
}

// Cholesky computes the upper triangular R with A = Rᵀ·R for a symmetric
// positive definite A.
// Implementation:
//   - Stage 1: ValidateSymmetric(m, eps).
//   - Stage 2: Column-by-column: R[j,j] = sqrt(A[j,j] - Σ_{k<j} R[k,j]²),
//     R[j,i] = (A[j,i] - Σ_{k<j} R[k,j]·R[k,i]) / R[j,j] for i > j.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNotPositiveDefinite (asymmetric input or a
//     non-positive leading minor).
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func Cholesky(m Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.eps); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := toDense(m, opCholesky)
	if err != nil {
		return nil, err
	}
	n := a.r
	R, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k int
		s, rjj  float64
	)
	for j = 0; j < n; j++ {
		s = a.data[j*n+j]
		for k = 0; k < j; k++ {
			s -= R.data[k*n+j] * R.data[k*n+j]
		}
		if s <= o.eps {
			return nil, matrixErrorf(opCholesky, fmt.Errorf("leading minor %d: %w", j, ErrNotPositiveDefinite))
		}
		rjj = math.Sqrt(s)
		R.data[j*n+j] = rjj
		for i = j + 1; i < n; i++ {
			s = a.data[j*n+i]
			for k = 0; k < j; k++ {
				s -= R.data[k*n+j] * R.data[k*n+i]
			}
			R.data[j*n+i] = s / rjj
		}
	}

	return R, nil
}
