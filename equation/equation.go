// SPDX-License-Identifier: MIT

// Package equation - one row of a linear system A·x = b.
//
// Purpose:
//   - Hold the sparse (or dense) coefficients of row i, its pivot column i and rhs b[i].
//   - Relax a shared solution vector in place (Gauss-Seidel Adjust) or seed it
//     from scratch (Initialise).
//
// Invariant:
//   - Pivot() == At(Index()) after any sequence of Add/Set/Modify. Every
//     coefficient write goes through store, the only writer of the pivot cache.

package equation

import (
	"cmp"
	"fmt"
	"math"

	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/sparse"
)

// Operation tags used in errors.
const (
	opNew        = "equation.New"
	opStore      = "equation.store"
	opDot        = "Dot"
	opAdjust     = "Adjust"
	opInitialise = "Initialise"
)

// Equation is row index of a linear system. The zero value is not usable; call New.
type Equation struct {
	index int     // pivot column, immutable
	cols  int     // declared column count, immutable
	rhs   float64 // immutable
	pivot float64 // cached coefficient at index, written only by store
	eps   float64 // singular-pivot tolerance
	row   storage
}

// New creates an empty equation for pivot column index in a system of cols unknowns.
// Errors: ErrInvalidDimensions (cols <= 0), ErrOutOfRange (index outside [0, cols)).
func New(index, cols int, rhs float64, opts ...Option) (*Equation, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%s(cols=%d): %w", opNew, cols, matrix.ErrInvalidDimensions)
	}
	if index < 0 || index >= cols {
		return nil, fmt.Errorf("%s(index=%d, cols=%d): %w", opNew, index, cols, matrix.ErrOutOfRange)
	}
	o := gatherOptions(opts...)

	e := &Equation{index: index, cols: cols, rhs: rhs, eps: o.pivotEps}
	if o.dense {
		e.row = make(denseRow, cols)
	} else {
		v, err := sparse.NewVector[float64](cols, min(o.hint, cols))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opNew, err)
		}
		e.row = sparseRow{v: v}
	}

	return e, nil
}

// store is the single mutation entry point: it rewrites one coefficient and keeps
// the pivot cache in step.
func (e *Equation) store(col int, fn func(old float64) float64) error {
	if col < 0 || col >= e.cols {
		return fmt.Errorf("%s: column %d of %d: %w", opStore, col, e.cols, matrix.ErrOutOfRange)
	}
	nv := e.row.update(col, fn)
	if col == e.index {
		e.pivot = nv
	}

	return nil
}

// Add adds v to the coefficient at col.
func (e *Equation) Add(col int, v float64) error {
	return e.store(col, func(old float64) float64 { return old + v })
}

// Set overwrites the coefficient at col.
func (e *Equation) Set(col int, v float64) error {
	return e.store(col, func(float64) float64 { return v })
}

// Modify replaces the coefficient at col with fn(old).
func (e *Equation) Modify(col int, fn func(old float64) float64) error {
	return e.store(col, fn)
}

// At returns the coefficient at col (0 when absent or out of range).
func (e *Equation) At(col int) float64 {
	if col < 0 || col >= e.cols {
		return 0
	}

	return e.row.get(col)
}

func (e *Equation) Index() int     { return e.index }
func (e *Equation) Cols() int      { return e.cols }
func (e *Equation) RHS() float64   { return e.rhs }
func (e *Equation) Pivot() float64 { return e.pivot }

// Count returns the number of nonzero coefficients.
func (e *Equation) Count() int { return e.row.count() }

// Each visits nonzero coefficients in increasing column order.
func (e *Equation) Each(fn func(col int, v float64)) { e.row.each(fn) }

// Dot returns Σ a[col]·x[col] over the nonzeros. O(nnz).
func (e *Equation) Dot(x []float64) (float64, error) {
	if len(x) != e.cols {
		return 0, fmt.Errorf("%s: len(x)=%d, cols=%d: %w", opDot, len(x), e.cols, matrix.ErrDimensionMismatch)
	}

	return e.row.dot(x), nil
}

// checkPivot reports a singular pivot for op.
func (e *Equation) checkPivot(op string) error {
	if matrix.IsSmall(e.pivot, e.eps) {
		return matrix.NewPivotError(op, e.index, math.Abs(e.pivot))
	}

	return nil
}

// Adjust performs one Gauss-Seidel step on x:
//
//	residual = rhs - Dot(x)
//	x[Index] += relaxation * residual / Pivot
//
// and returns the residual seen before the update. relaxation is not validated;
// values outside (0, 2) are liable to diverge.
//
// Errors:
//   - matrix.ErrDimensionMismatch when len(x) != Cols().
//   - *matrix.PivotError when |Pivot| is within the tolerance; x is untouched.
func (e *Equation) Adjust(x []float64, relaxation float64) (float64, error) {
	if len(x) != e.cols {
		return 0, fmt.Errorf("%s: len(x)=%d, cols=%d: %w", opAdjust, len(x), e.cols, matrix.ErrDimensionMismatch)
	}
	if err := e.checkPivot(opAdjust); err != nil {
		return 0, err
	}
	residual := e.rhs - e.row.dot(x)
	x[e.index] += relaxation * residual / e.pivot

	return residual, nil
}

// Initialise seeds x[Index] as if rhs were zero:
//
//	x[Index] = -(Dot(x) - Pivot*x[Index]) / Pivot
//
// that is, the negated dot product of the off-pivot terms divided by the pivot.
// It returns -Dot(x), the residual seen before the update.
// Errors mirror Adjust.
func (e *Equation) Initialise(x []float64) (float64, error) {
	if len(x) != e.cols {
		return 0, fmt.Errorf("%s: len(x)=%d, cols=%d: %w", opInitialise, len(x), e.cols, matrix.ErrDimensionMismatch)
	}
	if err := e.checkPivot(opInitialise); err != nil {
		return 0, err
	}
	dot := e.row.dot(x)
	x[e.index] = -(dot - e.pivot*x[e.index]) / e.pivot

	return -dot, nil
}

// residual is rhs - Dot(x) without validation.
func (e *Equation) residual(x []float64) float64 { return e.rhs - e.row.dot(x) }

// Compare orders equations by pivot index, breaking ties by rhs.
// It is the total order System uses to keep its rows canonical.
func Compare(a, b *Equation) int {
	if c := cmp.Compare(a.index, b.index); c != 0 {
		return c
	}

	return cmp.Compare(a.rhs, b.rhs)
}
