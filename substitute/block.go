// SPDX-License-Identifier: MIT

package substitute

import (
	"fmt"

	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/sparse"
)

// Block is the right-hand side of a solve; it is overwritten with the solution.
// Get reports whether (i, c) is stored (absent means zero). Put may insert.
// Concurrent Put calls on distinct columns must be safe (see SolveColumns).
type Block[T any] interface {
	Dims() (rows, cols int)
	Get(i, c int) (T, bool)
	Put(i, c int, v T)
}

var (
	_ Block[float64] = Vec[float64](nil)
	_ Block[float64] = (*DenseBlock[float64])(nil)
	_ Block[float64] = (*SparseVec[float64])(nil)
)

// Vec is a dense single-column right-hand side.
type Vec[T any] []T

func (v Vec[T]) Dims() (rows, cols int) { return len(v), 1 }
func (v Vec[T]) Get(i, _ int) (T, bool) { return v[i], true }
func (v Vec[T]) Put(i, _ int, x T) { v[i] = x }

// DenseBlock is a row-major multi-column right-hand side.
type DenseBlock[T any] struct {
	r, c int
	data []T
}

// NewDenseBlock wraps row-major data (not copied) as an r×c block.
func NewDenseBlock[T any](r, c int, data []T) (*DenseBlock[T], error) {
	if r < 0 || c < 0 || len(data) != r*c {
		return nil, fmt.Errorf("substitute.NewDenseBlock(%d,%d): %w", r, c, matrix.ErrDimensionMismatch)
	}

	return &DenseBlock[T]{r: r, c: c, data: data}, nil
}

func (b *DenseBlock[T]) Dims() (rows, cols int) { return b.r, b.c }
func (b *DenseBlock[T]) Get(i, c int) (T, bool) { return b.data[i*b.c+c], true }
func (b *DenseBlock[T]) Put(i, c int, v T) { b.data[i*b.c+c] = v }

// Column copies column c out of the block.
func (b *DenseBlock[T]) Column(c int) []T {
	out := make([]T, b.r)
	for i := range out {
		out[i] = b.data[i*b.c+c]
	}

	return out
}

// SparseVec is a sparse single-column right-hand side. Solving fills it in
// only where the solution can be nonzero.
type SparseVec[T any] struct {
	v *sparse.Vector[T]
}

// NewSparseVec wraps v; the solve writes into v.
func NewSparseVec[T any](v *sparse.Vector[T]) *SparseVec[T] { return &SparseVec[T]{v: v} }

func (s *SparseVec[T]) Dims() (rows, cols int) { return s.v.Len(), 1 }
func (s *SparseVec[T]) Get(i, _ int) (T, bool) { return s.v.Get(i) }

// Put stores x at row i. Rows were validated by the solve, so Set cannot fail.
func (s *SparseVec[T]) Put(i, _ int, x T) { _ = s.v.Set(i, x) }

// Vector returns the underlying sparse vector.
func (s *SparseVec[T]) Vector() *sparse.Vector[T] { return s.v }
