// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/linsys/arith"
	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/substitute"
)

const (
	opLU       = "LU"
	opCholesky = "Cholesky"
)

var (
	_ InvertibleFactor = (*LU)(nil)
	_ InvertibleFactor = (*Cholesky)(nil)
	_ Conditioner      = (*LU)(nil)
	_ Conditioner      = (*Cholesky)(nil)
)

// LU is a refactorized basis P·B = L·U solved with the substitute engine.
// Perm[i] is the original row placed at row i.
type LU struct {
	n    int
	perm []int
	l, u substitute.Body[float64]
	f    arith.Float64
	cond float64
}

// NewLU wraps a matrix.LU result. With sparse set, the triangles are stored in
// CSR form so each solve costs O(nnz(L)+nnz(U)).
func NewLU(res *matrix.LUResult, sparse bool, opts ...Option) (*LU, error) {
	if res == nil || res.L == nil || res.U == nil {
		return nil, fmt.Errorf("%s: %w", opLU, matrix.ErrNilMatrix)
	}
	n := res.U.Rows()
	if len(res.Perm) != n {
		return nil, fmt.Errorf("%s: perm %d vs %d: %w", opLU, len(res.Perm), n, matrix.ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	f := arith.Float64{Eps: o.eps}
	l, err := body(f, res.L, sparse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLU, err)
	}
	u, err := body(f, res.U, sparse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opLU, err)
	}

	return &LU{
		n:    n,
		perm: append([]int(nil), res.Perm...),
		l:    l,
		u:    u,
		f:    f,
		cond: pivotRatio(res.U),
	}, nil
}

func body(f arith.Float64, m *matrix.Dense, sparse bool) (substitute.Body[float64], error) {
	if sparse {
		return substitute.SparseFromMatrix[float64](f, m)
	}

	return substitute.FromMatrix[float64](f, m)
}

// pivotRatio is max|u_ii| / min|u_ii|, a cheap lower bound on cond(U).
func pivotRatio(u *matrix.Dense) float64 {
	lo, hi := math.Inf(1), 0.0
	for i := 0; i < u.Rows(); i++ {
		d, _ := u.At(i, i)
		d = math.Abs(d)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo == 0 {
		return math.Inf(1)
	}

	return hi / lo
}

func (f *LU) Size() int { return f.n }

// Cond returns the diagonal pivot ratio of U.
func (f *LU) Cond() float64 { return f.cond }

// FTran solves B·x = v: permute, forward on unit L, backward on U.
func (f *LU) FTran(v []float64) error {
	if err := checkLen(opLU+"."+opFTran, v, f.n); err != nil {
		return err
	}
	w := make([]float64, f.n)
	for i, p := range f.perm {
		w[i] = v[p]
	}
	if err := substitute.Forwards[float64](f.f, f.l, substitute.Vec[float64](w), substitute.WithUnit()); err != nil {
		return err
	}
	if err := substitute.Backwards[float64](f.f, f.u, substitute.Vec[float64](w)); err != nil {
		return err
	}
	copy(v, w)

	return nil
}

// BTran solves Bᵗ·y = v: Uᵗ forward, unit Lᵗ backward, then undo the permutation.
func (f *LU) BTran(v []float64) error {
	if err := checkLen(opLU+"."+opBTran, v, f.n); err != nil {
		return err
	}
	w := append([]float64(nil), v...)
	if err := substitute.Forwards[float64](f.f, f.u, substitute.Vec[float64](w), substitute.WithTranspose()); err != nil {
		return err
	}
	if err := substitute.Backwards[float64](f.f, f.l, substitute.Vec[float64](w), substitute.WithTranspose(), substitute.WithUnit()); err != nil {
		return err
	}
	for i, p := range f.perm {
		v[p] = w[i]
	}

	return nil
}

// Cholesky is a refactorized symmetric positive definite basis B = Rᵗ·R.
// Both transforms solve with Rᵗ then R.
type Cholesky struct {
	n    int
	r    substitute.Body[float64]
	f    arith.Float64
	cond float64
}

// NewCholesky wraps the upper factor R returned by matrix.Cholesky.
func NewCholesky(r *matrix.Dense, sparse bool, opts ...Option) (*Cholesky, error) {
	if r == nil {
		return nil, fmt.Errorf("%s: %w", opCholesky, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(r); err != nil {
		return nil, fmt.Errorf("%s: %w", opCholesky, err)
	}
	o := gatherOptions(opts...)
	f := arith.Float64{Eps: o.eps}
	b, err := body(f, r, sparse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCholesky, err)
	}
	ratio := pivotRatio(r)

	return &Cholesky{n: r.Rows(), r: b, f: f, cond: ratio * ratio}, nil
}

func (f *Cholesky) Size() int { return f.n }

// Cond returns the squared diagonal ratio of R.
func (f *Cholesky) Cond() float64 { return f.cond }

// FTran solves B·x = v.
func (f *Cholesky) FTran(v []float64) error {
	if err := checkLen(opCholesky+"."+opFTran, v, f.n); err != nil {
		return err
	}

	return f.solve(v)
}

// BTran solves Bᵗ·y = v, which is FTran for a symmetric B.
func (f *Cholesky) BTran(v []float64) error {
	if err := checkLen(opCholesky+"."+opBTran, v, f.n); err != nil {
		return err
	}

	return f.solve(v)
}

func (f *Cholesky) solve(v []float64) error {
	w := append([]float64(nil), v...)
	if err := substitute.Forwards[float64](f.f, f.r, substitute.Vec[float64](w), substitute.WithTranspose()); err != nil {
		return err
	}
	if err := substitute.Backwards[float64](f.f, f.r, substitute.Vec[float64](w)); err != nil {
		return err
	}
	copy(v, w)

	return nil
}
