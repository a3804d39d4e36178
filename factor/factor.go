// SPDX-License-Identifier: MIT

// Package factor - invertible factors of a product-form basis inverse.
//
// Purpose:
//   - InvertibleFactor is the single capability every factor offers: FTran solves
//     F·x = v and BTran solves Fᵗ·x = v, both in place.
//   - Identity seeds an empty chain; Elementary records one basis-column swap.
//
// Contract:
//   - len(v) != Size() is matrix.ErrDimensionMismatch and v is left untouched.
//   - Factors are immutable after construction, so concurrent transforms of
//     distinct vectors are safe.

package factor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/sparse"
)

// Operation tags used in errors.
const (
	opIdentity   = "Identity"
	opElementary = "Elementary"
	opFTran      = "FTran"
	opBTran      = "BTran"
)

// InvertibleFactor is a linear operator F that can be inverted in place.
type InvertibleFactor interface {
	// Size returns n for an n×n operator.
	Size() int
	// FTran overwrites v with F⁻¹·v.
	FTran(v []float64) error
	// BTran overwrites v with F⁻ᵗ·v.
	BTran(v []float64) error
}

// Conditioner is implemented by factors that carry a condition estimate.
type Conditioner interface {
	Cond() float64
}

var (
	_ InvertibleFactor = Identity{}
	_ InvertibleFactor = (*Elementary)(nil)
)

func checkLen(op string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: len(v)=%d, size=%d: %w", op, len(v), n, matrix.ErrDimensionMismatch)
	}

	return nil
}

// Identity is the n×n identity; both transforms leave v bit-for-bit unchanged.
type Identity struct {
	n int
}

// NewIdentity returns the n×n identity factor.
func NewIdentity(n int) (Identity, error) {
	if n <= 0 {
		return Identity{}, fmt.Errorf("%s(%d): %w", opIdentity, n, matrix.ErrInvalidDimensions)
	}

	return Identity{n: n}, nil
}

func (f Identity) Size() int { return f.n }

// FTran validates the length only.
func (f Identity) FTran(v []float64) error { return checkLen(opIdentity+"."+opFTran, v, f.n) }

// BTran validates the length only.
func (f Identity) BTran(v []float64) error { return checkLen(opIdentity+"."+opBTran, v, f.n) }

// Cond of the identity is 1.
func (f Identity) Cond() float64 { return 1 }

// Elementary is the identity with column pos replaced by a column a that was
// already expressed in the coordinates of the basis it updates.
//
//	FTran: x_pos = v_pos / a_pos,   x_i = v_i - a_i·x_pos   (i != pos)
//	BTran: x_pos = (v_pos - Σ_{i≠pos} a_i·v_i) / a_pos,   other entries unchanged
type Elementary struct {
	n     int
	pos   int
	pivot float64
	eta   *sparse.Vector[float64] // off-pivot nonzeros of the column
}

// NewElementary builds the factor from an ftran'd column and the leaving
// position. column is copied.
//
// Errors:
//   - matrix.ErrOutOfRange for pos outside [0, len(column)).
//   - matrix.ErrInvalidDimensions for an empty column.
//   - *matrix.PivotError when |column[pos]| is within the pivot tolerance; an
//     exact zero is always rejected, so the factor never produces Inf/NaN.
func NewElementary(column []float64, pos int, opts ...Option) (*Elementary, error) {
	if len(column) == 0 {
		return nil, fmt.Errorf("%s: %w", opElementary, matrix.ErrInvalidDimensions)
	}
	if pos < 0 || pos >= len(column) {
		return nil, fmt.Errorf("%s: pos %d of %d: %w", opElementary, pos, len(column), matrix.ErrOutOfRange)
	}
	o := gatherOptions(opts...)
	pivot := column[pos]
	if matrix.IsSmall(pivot, o.eps) {
		return nil, matrix.NewPivotError(opElementary, pos, math.Abs(pivot))
	}

	eta := sparse.FromDense(column, sparse.NonZero)
	_ = eta.Delete(pos) // pos is in range

	return &Elementary{n: len(column), pos: pos, pivot: pivot, eta: eta}, nil
}

func (f *Elementary) Size() int { return f.n }

// Pos returns the pivot position (the leaving basis row).
func (f *Elementary) Pos() int { return f.pos }

// Pivot returns column[pos].
func (f *Elementary) Pivot() float64 { return f.pivot }

// Column returns a dense copy of the stored column.
func (f *Elementary) Column() []float64 {
	out := make([]float64, f.n)
	f.eta.Each(func(i int, a float64) { out[i] = a })
	out[f.pos] = f.pivot

	return out
}

// FTran performs one Gauss-Jordan elimination with the stored column as pivot column.
// Complexity: O(nnz(column)).
func (f *Elementary) FTran(v []float64) error {
	if err := checkLen(opElementary+"."+opFTran, v, f.n); err != nil {
		return err
	}
	xr := v[f.pos] / f.pivot
	if xr != 0 {
		f.eta.Each(func(i int, a float64) { v[i] -= a * xr })
	}
	v[f.pos] = xr

	return nil
}

// BTran eliminates along the pivot row. Complexity: O(nnz(column)).
func (f *Elementary) BTran(v []float64) error {
	if err := checkLen(opElementary+"."+opBTran, v, f.n); err != nil {
		return err
	}
	s := v[f.pos]
	f.eta.Each(func(i int, a float64) { s -= a * v[i] })
	v[f.pos] = s / f.pivot

	return nil
}
