// SPDX-License-Identifier: MIT

package substitute

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linsys/arith"
	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/sparse"
)

// Body is the read-only triangular matrix of a solve.
//   - At reports whether (i, j) is stored; an absent entry is zero.
//   - Row visits the stored entries of row i; entries outside the triangle
//     that the solve uses are skipped by the engine.
type Body[T any] interface {
	Dims() (rows, cols int)
	At(i, j int) (T, bool)
	Row(i int, fn func(j int, v T))
}

var (
	_ Body[float64]    = (*Dense[float64])(nil)
	_ Body[float64]    = (*sparse.CSR[float64])(nil)
	_ Body[complex128] = (*Dense[complex128])(nil)
)

// Dense is a row-major triangular body. Every cell is stored.
type Dense[T any] struct {
	r, c int
	data []T
}

// NewDense wraps row-major data (not copied) as an r×c body.
func NewDense[T any](r, c int, data []T) (*Dense[T], error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("substitute.NewDense(%d,%d): %w", r, c, matrix.ErrInvalidDimensions)
	}
	if len(data) != r*c {
		return nil, fmt.Errorf("substitute.NewDense(%d,%d): len %d: %w", r, c, len(data), matrix.ErrDimensionMismatch)
	}

	return &Dense[T]{r: r, c: c, data: data}, nil
}

// Dims returns the shape.
func (d *Dense[T]) Dims() (rows, cols int) { return d.r, d.c }

// At returns cell (i, j); out-of-range reads report false.
func (d *Dense[T]) At(i, j int) (T, bool) {
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		var zero T
		return zero, false
	}

	return d.data[i*d.c+j], true
}

// Row visits every cell of row i.
func (d *Dense[T]) Row(i int, fn func(j int, v T)) {
	if i < 0 || i >= d.r {
		return
	}
	base := i * d.c
	for j := 0; j < d.c; j++ {
		fn(j, d.data[base+j])
	}
}

// FromMatrix converts a float64 matrix into a dense body over f.
func FromMatrix[T any](f arith.Field[T], m matrix.Matrix) (*Dense[T], error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("substitute.FromMatrix: %w", err)
	}
	r, c := m.Rows(), m.Cols()
	data := make([]T, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("substitute.FromMatrix: %w", err)
			}
			data[i*c+j] = f.FromFloat(v)
		}
	}

	return NewDense(r, c, data)
}

// FromGonum converts a gonum matrix (for instance the triangle returned by
// mat.LU.UTo) into a dense body over f.
func FromGonum[T any](f arith.Field[T], m mat.Matrix) (*Dense[T], error) {
	r, c := m.Dims()
	data := make([]T, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = f.FromFloat(m.At(i, j))
		}
	}

	return NewDense(r, c, data)
}

// SparseFromMatrix compresses a float64 matrix into a CSR body over f,
// dropping exact zeros.
func SparseFromMatrix[T any](f arith.Field[T], m matrix.Matrix) (*sparse.CSR[T], error) {
	return sparse.CSRFromMatrix(m, f.FromFloat)
}
