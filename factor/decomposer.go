// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"

	"github.com/katalvlaran/linsys/matrix"
)

// Decomposer refactorizes an explicit basis into a fresh base factor.
type Decomposer interface {
	Decompose(b matrix.Matrix) (InvertibleFactor, error)
}

// DecomposerFunc adapts a function to Decomposer.
type DecomposerFunc func(b matrix.Matrix) (InvertibleFactor, error)

// Decompose calls fn(b).
func (fn DecomposerFunc) Decompose(b matrix.Matrix) (InvertibleFactor, error) { return fn(b) }

// NewLUDecomposer refactorizes with matrix.LU (partial pivoting).
// Honors WithPivotTolerance and WithSparseBodies.
func NewLUDecomposer(opts ...Option) Decomposer {
	o := gatherOptions(opts...)

	return DecomposerFunc(func(b matrix.Matrix) (InvertibleFactor, error) {
		res, err := matrix.LU(b, matrix.WithEpsilon(o.eps))
		if err != nil {
			return nil, fmt.Errorf("decompose: %w", err)
		}

		return NewLU(res, o.sparseBodies, opts...)
	})
}

// NewCholeskyDecomposer refactorizes symmetric positive definite bases with
// matrix.Cholesky. Honors WithPivotTolerance and WithSparseBodies.
func NewCholeskyDecomposer(opts ...Option) Decomposer {
	o := gatherOptions(opts...)

	return DecomposerFunc(func(b matrix.Matrix) (InvertibleFactor, error) {
		r, err := matrix.Cholesky(b, matrix.WithEpsilon(o.eps))
		if err != nil {
			return nil, fmt.Errorf("decompose: %w", err)
		}

		return NewCholesky(r, o.sparseBodies, opts...)
	})
}

// NewGonumLUDecomposer refactorizes with gonum's mat.LU.
func NewGonumLUDecomposer() Decomposer {
	return DecomposerFunc(func(b matrix.Matrix) (InvertibleFactor, error) {
		return NewGonumLU(b)
	})
}

// NewGonumCholeskyDecomposer refactorizes with gonum's mat.Cholesky.
func NewGonumCholeskyDecomposer(opts ...Option) Decomposer {
	return DecomposerFunc(func(b matrix.Matrix) (InvertibleFactor, error) {
		return NewGonumCholesky(b, opts...)
	})
}
