// SPDX-License-Identifier: MIT

package factor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linsys/matrix"
)

const (
	opGonumLU       = "GonumLU"
	opGonumCholesky = "GonumCholesky"
)

var (
	_ InvertibleFactor = (*GonumLU)(nil)
	_ InvertibleFactor = (*GonumCholesky)(nil)
	_ Conditioner      = (*GonumLU)(nil)
	_ Conditioner      = (*GonumCholesky)(nil)
)

// toGonum copies a validated square matrix into a gonum dense matrix.
func toGonum(m matrix.Matrix) (*mat.Dense, error) {
	if err := matrix.ValidateSquareNonNil(m); err != nil {
		return nil, err
	}
	n := m.Rows()
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// conditionErr maps gonum's ill-conditioning report onto ErrSingularPivot.
func conditionErr(op string, err error) error {
	var c mat.Condition
	if errors.As(err, &c) {
		return fmt.Errorf("%s: condition %g: %w", op, float64(c), matrix.ErrSingularPivot)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// GonumLU delegates to gonum's LAPACK-backed mat.LU.
type GonumLU struct {
	n  int
	lu mat.LU
}

// NewGonumLU factorizes b. A singular or numerically singular b
// (condition estimate above mat.ConditionTolerance) is ErrSingularPivot.
func NewGonumLU(b matrix.Matrix) (*GonumLU, error) {
	a, err := toGonum(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGonumLU, err)
	}
	f := &GonumLU{n: a.RawMatrix().Rows}
	f.lu.Factorize(a)
	if c := f.lu.Cond(); c > mat.ConditionTolerance {
		return nil, conditionErr(opGonumLU, mat.Condition(c))
	}

	return f, nil
}

func (f *GonumLU) Size() int { return f.n }

// Cond returns gonum's 1-norm condition estimate.
func (f *GonumLU) Cond() float64 { return f.lu.Cond() }

func (f *GonumLU) FTran(v []float64) error { return f.solve(opFTran, v, false) }

func (f *GonumLU) BTran(v []float64) error { return f.solve(opBTran, v, true) }

func (f *GonumLU) solve(op string, v []float64, trans bool) error {
	if err := checkLen(opGonumLU+"."+op, v, f.n); err != nil {
		return err
	}
	var dst mat.VecDense
	if err := f.lu.SolveVecTo(&dst, trans, mat.NewVecDense(f.n, append([]float64(nil), v...))); err != nil {
		return conditionErr(opGonumLU+"."+op, err)
	}
	copy(v, dst.RawVector().Data)

	return nil
}

// GonumCholesky delegates to gonum's mat.Cholesky for symmetric positive
// definite bases.
type GonumCholesky struct {
	n  int
	ch mat.Cholesky
}

// NewGonumCholesky factorizes the upper triangle of b.
// Errors: matrix.ErrNotPositiveDefinite when b is asymmetric or not definite.
func NewGonumCholesky(b matrix.Matrix, opts ...Option) (*GonumCholesky, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateSymmetric(b, o.eps); err != nil {
		return nil, fmt.Errorf("%s: %w", opGonumCholesky, err)
	}
	a, err := toGonum(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGonumCholesky, err)
	}
	n := a.RawMatrix().Rows
	f := &GonumCholesky{n: n}
	if !f.ch.Factorize(mat.NewSymDense(n, a.RawMatrix().Data)) {
		return nil, fmt.Errorf("%s: %w", opGonumCholesky, matrix.ErrNotPositiveDefinite)
	}

	return f, nil
}

func (f *GonumCholesky) Size() int { return f.n }

// Cond returns gonum's condition estimate.
func (f *GonumCholesky) Cond() float64 { return f.ch.Cond() }

func (f *GonumCholesky) FTran(v []float64) error { return f.solve(opFTran, v) }

// BTran equals FTran for a symmetric basis.
func (f *GonumCholesky) BTran(v []float64) error { return f.solve(opBTran, v) }

func (f *GonumCholesky) solve(op string, v []float64) error {
	if err := checkLen(opGonumCholesky+"."+op, v, f.n); err != nil {
		return err
	}
	var dst mat.VecDense
	if err := f.ch.SolveVecTo(&dst, mat.NewVecDense(f.n, append([]float64(nil), v...))); err != nil {
		return conditionErr(opGonumCholesky+"."+op, err)
	}
	copy(v, dst.RawVector().Data)

	return nil
}
