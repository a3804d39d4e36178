// SPDX-License-Identifier: MIT

package equation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsys/matrix"
)

// Sentinel errors of the equation package.
var (
	// ErrDuplicatePivot: two equations of one System share a pivot index.
	ErrDuplicatePivot = errors.New("equation: duplicate pivot index")

	// ErrNotConverged: Solve exhausted its sweep budget above the tolerance.
	ErrNotConverged = errors.New("equation: not converged")
)

const (
	opNewSystem  = "equation.NewSystem"
	opFromMatrix = "equation.FromMatrix"
	opSweep      = "Sweep"
	opJacobi     = "JacobiSweep"
	opResiduals  = "Residuals"
)

// minJacobiChunk is the smallest number of rows handed to one goroutine.
const minJacobiChunk = 64

// System is a list of equations over cols unknowns, sorted by pivot index with
// at most one row per pivot.
type System struct {
	cols int
	rows []*Equation
}

// NewSystem validates and sorts eqs (by Compare).
// Errors: ErrDimensionMismatch (an equation with another column count),
// ErrDuplicatePivot, ErrNilMatrix (nil equation).
func NewSystem(cols int, eqs ...*Equation) (*System, error) {
	rows := slices.Clone(eqs)
	for _, e := range rows {
		if e == nil {
			return nil, fmt.Errorf("%s: %w", opNewSystem, matrix.ErrNilMatrix)
		}
		if e.cols != cols {
			return nil, fmt.Errorf("%s: equation %d has %d cols, want %d: %w", opNewSystem, e.index, e.cols, cols, matrix.ErrDimensionMismatch)
		}
	}
	slices.SortFunc(rows, Compare)
	for k := 1; k < len(rows); k++ {
		if rows[k].index == rows[k-1].index {
			return nil, fmt.Errorf("%s: index %d: %w", opNewSystem, rows[k].index, ErrDuplicatePivot)
		}
	}

	return &System{cols: cols, rows: rows}, nil
}

// FromMatrix builds one equation per row of the square matrix a, pivoting on the
// diagonal, with rhs b. Exact zeros are not stored.
func FromMatrix(a matrix.Matrix, b []float64, opts ...Option) (*System, error) {
	if err := matrix.ValidateSquareNonNil(a); err != nil {
		return nil, fmt.Errorf("%s: %w", opFromMatrix, err)
	}
	n := a.Rows()
	if err := matrix.ValidateVecLen(b, n); err != nil {
		return nil, fmt.Errorf("%s: %w", opFromMatrix, err)
	}
	eqs := make([]*Equation, n)
	for i := 0; i < n; i++ {
		e, err := New(i, n, b[i], opts...)
		if err != nil {
			return nil, err
		}
		for j := 0; j < n; j++ {
			v, err := a.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opFromMatrix, err)
			}
			if v != 0 {
				if err = e.Set(j, v); err != nil {
					return nil, err
				}
			}
		}
		eqs[i] = e
	}

	return NewSystem(n, eqs...)
}

// Len returns the number of equations.
func (s *System) Len() int { return len(s.rows) }

// Cols returns the number of unknowns.
func (s *System) Cols() int { return s.cols }

// Equation returns the k-th equation in pivot order.
func (s *System) Equation(k int) *Equation { return s.rows[k] }

func (s *System) checkLen(op string, x []float64) error {
	if len(x) != s.cols {
		return fmt.Errorf("%s: len(x)=%d, cols=%d: %w", op, len(x), s.cols, matrix.ErrDimensionMismatch)
	}

	return nil
}

// checkPivots fails on the first singular pivot, before any write.
func (s *System) checkPivots(op string) error {
	for _, e := range s.rows {
		if err := e.checkPivot(op); err != nil {
			return err
		}
	}

	return nil
}

// Sweep runs Adjust over every equation in increasing index order and returns
// the 2-norm of the residuals Adjust reported.
func (s *System) Sweep(x []float64, relaxation float64) (float64, error) {
	if err := s.checkLen(opSweep, x); err != nil {
		return 0, err
	}
	if err := s.checkPivots(opSweep); err != nil {
		return 0, err
	}
	res := make([]float64, len(s.rows))
	for k, e := range s.rows {
		r, err := e.Adjust(x, relaxation)
		if err != nil {
			return 0, err
		}
		res[k] = r
	}

	return floats.Norm(res, 2), nil
}

// Initialise seeds x with Initialise over every equation in index order and
// returns the 2-norm of the reported residuals.
func (s *System) Initialise(x []float64) (float64, error) {
	if err := s.checkLen(opInitialise, x); err != nil {
		return 0, err
	}
	if err := s.checkPivots(opInitialise); err != nil {
		return 0, err
	}
	res := make([]float64, len(s.rows))
	for k, e := range s.rows {
		r, err := e.Initialise(x)
		if err != nil {
			return 0, err
		}
		res[k] = r
	}

	return floats.Norm(res, 2), nil
}

// JacobiSweep is the data-parallel counterpart of Sweep: every equation reads the
// x of the previous sweep, so rows are split across goroutines. Its convergence
// profile differs from Gauss-Seidel. Cancellation is checked per chunk.
func (s *System) JacobiSweep(ctx context.Context, x []float64, relaxation float64) (float64, error) {
	if err := s.checkLen(opJacobi, x); err != nil {
		return 0, err
	}
	if err := s.checkPivots(opJacobi); err != nil {
		return 0, err
	}
	prev := slices.Clone(x)
	res := make([]float64, len(s.rows))

	workers := runtime.GOMAXPROCS(0)
	chunk := max(minJacobiChunk, (len(s.rows)+workers-1)/workers)
	g, gCtx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(s.rows); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(s.rows))
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			for k := lo; k < hi; k++ {
				e := s.rows[k]
				r := e.residual(prev)
				res[k] = r
				x[e.index] = prev[e.index] + relaxation*r/e.pivot // distinct pivots, no overlap
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		copy(x, prev)
		return 0, err
	}

	return floats.Norm(res, 2), nil
}

// Residuals returns rhs - Dot(x) per equation, in pivot order, without mutating x.
func (s *System) Residuals(x []float64) ([]float64, error) {
	if err := s.checkLen(opResiduals, x); err != nil {
		return nil, err
	}
	res := make([]float64, len(s.rows))
	for k, e := range s.rows {
		res[k] = e.residual(x)
	}

	return res, nil
}
