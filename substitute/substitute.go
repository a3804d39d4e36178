// SPDX-License-Identifier: MIT

// Package substitute - in-place triangular solves.
//
// Purpose:
//   - One elimination loop over any arith.Field, any Body (dense or CSR) and any
//     Block (dense vector, dense multi-column, sparse vector).
//
// Orientation:
//   - Forwards: op(T) is lower triangular, rows are finalized front to back.
//   - Backwards: op(T) is upper triangular, rows are finalized back to front.
//   - op(T) = T, or Tᵗ under WithTranspose; entries conjugated under WithConjugate.
//
// Failure atomicity:
//   - Shapes and (unless WithUnit) every diagonal pivot are checked before the
//     first write, so an error leaves the right-hand side untouched.

package substitute

import (
	"fmt"

	"github.com/katalvlaran/linsys/arith"
	"github.com/katalvlaran/linsys/matrix"
)

// Operation tags used in errors.
const (
	opForwards  = "Forwards"
	opBackwards = "Backwards"
)

// plan is a validated solve: sub-block geometry, RHS column range and the
// (conjugated) diagonal, ready to run column by column.
type plan[T any] struct {
	f        arith.Field[T]
	body     Body[T]
	rhs      Block[T]
	o        Options
	k, n     int  // sub-block offset and size
	first    int  // first RHS column
	limit    int  // one past the last RHS column
	forwards bool // row order
	lower    bool // op(T) entries used are those with j < i
	diag     []T  // nil under WithUnit
}

// Forwards solves op(T)·X = B in place for a lower-triangular op(T),
// processing rows front to back: X[i] = (B[i] - Σ_{j<i} op(T)[i,j]·X[j]) / op(T)[i,i].
//
// Inputs:
//   - f: arithmetic of the scalar type (decides what a negligible pivot is).
//   - body: triangular matrix; with WithTranspose it must hold the upper triangle.
//   - rhs: right-hand side, overwritten with X.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch for shape problems.
//   - *matrix.PivotError (matrix.ErrSingularPivot) for a negligible or missing diagonal.
//
// Complexity:
//   - Time O(nnz(T)·cols(B)) for CSR bodies, O(n²·cols(B)) for dense ones.
func Forwards[T any](f arith.Field[T], body Body[T], rhs Block[T], opts ...Option) error {
	p, err := newPlan(f, body, rhs, true, gatherOptions(opts...))
	if err != nil {
		return err
	}
	for c := p.first; c < p.limit; c++ {
		p.column(c)
	}

	return nil
}

// Backwards solves op(T)·X = B in place for an upper-triangular op(T),
// processing rows back to front: X[i] = (B[i] - Σ_{j>i} op(T)[i,j]·X[j]) / op(T)[i,i].
// Inputs, errors and complexity mirror Forwards.
func Backwards[T any](f arith.Field[T], body Body[T], rhs Block[T], opts ...Option) error {
	p, err := newPlan(f, body, rhs, false, gatherOptions(opts...))
	if err != nil {
		return err
	}
	for c := p.first; c < p.limit; c++ {
		p.column(c)
	}

	return nil
}

func newPlan[T any](f arith.Field[T], body Body[T], rhs Block[T], forwards bool, o Options) (*plan[T], error) {
	op := opBackwards
	if forwards {
		op = opForwards
	}
	if f == nil || body == nil || rhs == nil {
		return nil, fmt.Errorf("%s: %w", op, matrix.ErrNilMatrix)
	}

	br, bc := body.Dims()
	rr, rc := rhs.Dims()
	side := min(br, bc)
	n := o.extent
	if n == toEnd {
		n = side - o.offset
	}
	if n < 0 || o.offset+n > side {
		return nil, fmt.Errorf("%s: block [%d,%d) of %dx%d body: %w", op, o.offset, o.offset+n, br, bc, matrix.ErrDimensionMismatch)
	}
	if rr < o.offset+n {
		return nil, fmt.Errorf("%s: rhs has %d rows, need %d: %w", op, rr, o.offset+n, matrix.ErrDimensionMismatch)
	}
	limit := o.limit
	if limit == toEnd {
		limit = rc
	}
	if limit > rc || o.first > limit {
		return nil, fmt.Errorf("%s: columns [%d,%d) of %d: %w", op, o.first, limit, rc, matrix.ErrDimensionMismatch)
	}

	p := &plan[T]{
		f: f, body: body, rhs: rhs, o: o,
		k: o.offset, n: n,
		first: o.first, limit: limit,
		forwards: forwards,
		lower:    forwards != o.trans,
	}
	if o.unit {
		return p, nil
	}

	p.diag = make([]T, n)
	for i := 0; i < n; i++ {
		d, ok := body.At(p.k+i, p.k+i)
		if !ok || f.IsNegligible(d) {
			var mag float64
			if ok {
				mag = f.Magnitude(d)
			}
			return nil, matrix.NewPivotError(op, p.k+i, mag)
		}
		p.diag[i] = p.entry(d)
	}

	return p, nil
}

// entry applies the conjugation policy to a body value.
func (p *plan[T]) entry(v T) T {
	if p.o.conj {
		return p.f.Conj(v)
	}

	return v
}

// row maps step s to the local row index in processing order.
func (p *plan[T]) row(s int) int {
	if p.forwards {
		return s
	}

	return p.n - 1 - s
}

// column solves one RHS column. Without WithTranspose it gathers along body rows;
// with it, the body row i is column i of op(T), so it scatters instead.
func (p *plan[T]) column(c int) {
	if p.o.trans {
		p.scatter(c)
		return
	}
	p.gather(c)
}

func (p *plan[T]) gather(c int) {
	f, k := p.f, p.k
	for s := 0; s < p.n; s++ {
		i := p.row(s)
		acc, touched := p.rhs.Get(k+i, c)
		if !touched {
			acc = f.Zero()
		}
		p.body.Row(k+i, func(jg int, v T) {
			j := jg - k
			if j < 0 || j >= p.n || j == i || (j < i) != p.lower {
				return
			}
			xj, ok := p.rhs.Get(k+j, c)
			if !ok {
				return
			}
			acc = f.Sub(acc, f.Mul(p.entry(v), xj))
			touched = true
		})
		if !touched {
			continue // absent and nothing to eliminate: stays zero
		}
		if p.diag != nil {
			acc = f.Div(acc, p.diag[i])
		}
		p.rhs.Put(k+i, c, acc)
	}
}

func (p *plan[T]) scatter(c int) {
	f, k := p.f, p.k
	for s := 0; s < p.n; s++ {
		i := p.row(s)
		xi, ok := p.rhs.Get(k+i, c)
		if !ok {
			continue // zero component eliminates nothing
		}
		if p.diag != nil {
			xi = f.Div(xi, p.diag[i])
			p.rhs.Put(k+i, c, xi)
		}
		p.body.Row(k+i, func(jg int, v T) {
			j := jg - k
			if j < 0 || j >= p.n || j == i || (j < i) != p.lower {
				return
			}
			bj, ok := p.rhs.Get(k+j, c)
			if !ok {
				bj = f.Zero()
			}
			p.rhs.Put(k+j, c, f.Sub(bj, f.Mul(p.entry(v), xi)))
		})
	}
}
