// SPDX-License-Identifier: MIT

package substitute_test

import (
	"context"
	"errors"
	"math"
	"math/big"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/linsys/arith"
	"github.com/katalvlaran/linsys/matrix"
	"github.com/katalvlaran/linsys/sparse"
	"github.com/katalvlaran/linsys/substitute"
)

const tol = 1e-10

// triangle returns an n×n triangular matrix with small integer entries,
// roughly half of the off-diagonal ones zero, and a diagonal in {2,3,4}.
func triangle(t *testing.T, n int, lower bool, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				require.NoError(t, m.Set(i, j, float64(2+rng.Intn(3))))
			case (j < i) == lower && rng.Intn(2) == 0:
				require.NoError(t, m.Set(i, j, float64(rng.Intn(7)-3)))
			}
		}
	}

	return m
}

func randomVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = float64(rng.Intn(21) - 10)
	}

	return v
}

func TestForwardsBackwards_ReproduceRHS(t *testing.T) {
	t.Parallel()
	f := arith.NewFloat64()
	for _, tc := range []struct {
		name     string
		forwards bool
		sparse   bool
	}{
		{"forwards dense", true, false},
		{"forwards csr", true, true},
		{"backwards dense", false, false},
		{"backwards csr", false, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			const n = 12
			T := triangle(t, n, tc.forwards, 42)
			b := randomVec(n, 7)
			x := append([]float64(nil), b...)

			var body substitute.Body[float64]
			var err error
			if tc.sparse {
				body, err = substitute.SparseFromMatrix[float64](f, T)
			} else {
				body, err = substitute.FromMatrix[float64](f, T)
			}
			require.NoError(t, err)

			if tc.forwards {
				err = substitute.Forwards[float64](f, body, substitute.Vec[float64](x))
			} else {
				err = substitute.Backwards[float64](f, body, substitute.Vec[float64](x))
			}
			require.NoError(t, err)

			got, err := matrix.MatVec(T, x)
			require.NoError(t, err)
			assert.True(t, floats.EqualApprox(b, got, tol), "T·X = %v, want %v", got, b)
		})
	}
}

// TestRepresentationsAgree solves the same lower system over float64 (dense and
// CSR), *big.Rat and *big.Float and compares the answers.
func TestRepresentationsAgree(t *testing.T) {
	const n = 9
	T := triangle(t, n, true, 3)
	b := randomVec(n, 4)

	ff := arith.NewFloat64()
	dense, err := substitute.FromMatrix[float64](ff, T)
	require.NoError(t, err)
	xd := append([]float64(nil), b...)
	require.NoError(t, substitute.Forwards[float64](ff, dense, substitute.Vec[float64](xd)))

	csr, err := substitute.SparseFromMatrix[float64](ff, T)
	require.NoError(t, err)
	xs := append([]float64(nil), b...)
	require.NoError(t, substitute.Forwards[float64](ff, csr, substitute.Vec[float64](xs)))

	rf := arith.Rational{}
	rbody, err := substitute.SparseFromMatrix[*big.Rat](rf, T)
	require.NoError(t, err)
	xr := arith.FromFloats[*big.Rat](rf, b)
	require.NoError(t, substitute.Forwards[*big.Rat](rf, rbody, substitute.Vec[*big.Rat](xr)))

	bf := arith.NewBigFloat(128)
	bbody, err := substitute.FromMatrix[*big.Float](bf, T)
	require.NoError(t, err)
	xb := arith.FromFloats[*big.Float](bf, b)
	require.NoError(t, substitute.Forwards[*big.Float](bf, bbody, substitute.Vec[*big.Float](xb)))

	// The exact answer satisfies T·x = b with no residual at all.
	for i := 0; i < n; i++ {
		acc := new(big.Rat)
		for j := 0; j <= i; j++ {
			tij, _ := T.At(i, j)
			acc.Add(acc, new(big.Rat).Mul(rf.FromFloat(tij), xr[j]))
		}
		require.Zero(t, acc.Cmp(rf.FromFloat(b[i])), "row %d", i)
	}

	for i := 0; i < n; i++ {
		exact, _ := xr[i].Float64()
		big64, _ := xb[i].Float64()
		assert.Equal(t, xd[i], xs[i], "dense vs csr row %d", i)
		assert.InDelta(t, exact, xd[i], tol*(1+math.Abs(exact)), "float vs rational row %d", i)
		assert.InDelta(t, exact, big64, 1e-15*(1+math.Abs(exact)), "bigfloat vs rational row %d", i)
	}
}

func TestTranspose(t *testing.T) {
	f := arith.NewFloat64()
	const n = 8
	U := triangle(t, n, false, 11)
	body, err := substitute.FromMatrix[float64](f, U)
	require.NoError(t, err)

	// Uᵗ is lower: Forwards with WithTranspose.
	b := randomVec(n, 12)
	x := append([]float64(nil), b...)
	require.NoError(t, substitute.Forwards[float64](f, body, substitute.Vec[float64](x), substitute.WithTranspose()))
	got, err := matrix.MatTVec(U, x)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(b, got, tol))

	// Lᵗ is upper: Backwards with WithTranspose.
	L := triangle(t, n, true, 13)
	lbody, err := substitute.SparseFromMatrix[float64](f, L)
	require.NoError(t, err)
	y := append([]float64(nil), b...)
	require.NoError(t, substitute.Backwards[float64](f, lbody, substitute.Vec[float64](y), substitute.WithTranspose()))
	got, err = matrix.MatTVec(L, y)
	require.NoError(t, err)
	assert.True(t, floats.EqualApprox(b, got, tol))
}

func TestUnitDiagonalNeverRead(t *testing.T) {
	f := arith.NewFloat64()
	// Diagonal stored as zero; WithUnit must act as if it were one.
	body, err := substitute.NewDense(3, 3, []float64{
		0, 0, 0,
		2, 0, 0,
		1, 3, 0,
	})
	require.NoError(t, err)
	x := []float64{1, 4, 10}
	require.NoError(t, substitute.Forwards[float64](f, body, substitute.Vec[float64](x), substitute.WithUnit()))
	assert.Equal(t, []float64{1, 2, 3}, x)

	// Without WithUnit the zero diagonal is a singular pivot.
	err = substitute.Forwards[float64](f, body, substitute.Vec[float64]([]float64{1, 4, 10}))
	require.ErrorIs(t, err, matrix.ErrSingularPivot)
}

func TestConjugate(t *testing.T) {
	f := arith.NewComplex128()
	data := []complex128{
		complex(2, 1), 0,
		complex(1, -1), complex(0, 3),
	}
	body, err := substitute.NewDense(2, 2, data)
	require.NoError(t, err)
	b := []complex128{complex(1, 0), complex(2, 2)}
	x := append([]complex128(nil), b...)
	require.NoError(t, substitute.Forwards[complex128](f, body, substitute.Vec[complex128](x), substitute.WithConjugate()))

	// conj(T)·x == b
	r0 := cmplx.Conj(data[0]) * x[0]
	r1 := cmplx.Conj(data[2])*x[0] + cmplx.Conj(data[3])*x[1]
	assert.InDelta(t, 0, cmplx.Abs(r0-b[0]), tol)
	assert.InDelta(t, 0, cmplx.Abs(r1-b[1]), tol)
}

func TestOffsetAndExtent(t *testing.T) {
	f := arith.NewFloat64()
	const n = 6
	T := triangle(t, n, true, 21)
	body, err := substitute.FromMatrix[float64](f, T)
	require.NoError(t, err)

	b := randomVec(n, 22)
	x := append([]float64(nil), b...)
	require.NoError(t, substitute.Forwards[float64](f, body, substitute.Vec[float64](x),
		substitute.WithOffset(2), substitute.WithExtent(3)))

	// Rows outside [2,5) are untouched.
	assert.Equal(t, b[:2], x[:2])
	assert.Equal(t, b[5:], x[5:])
	for i := 2; i < 5; i++ {
		var acc float64
		for j := 2; j <= i; j++ {
			tij, _ := T.At(i, j)
			acc += tij * x[j]
		}
		assert.InDelta(t, b[i], acc, tol, "row %d", i)
	}

	err = substitute.Forwards[float64](f, body, substitute.Vec[float64](x), substitute.WithOffset(4), substitute.WithExtent(3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSparseRHS_FillsOnlyReachableRows(t *testing.T) {
	f := arith.NewFloat64()
	// Row 3 depends on row 1; rows 0 and 2 never see the impulse at row 1.
	body, err := substitute.SparseFromMatrix[float64](f, mustRows(t, [][]float64{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{5, 0, 1, 0},
		{0, 4, 0, 1},
	}))
	require.NoError(t, err)
	v, err := sparse.NewVector[float64](4, 1)
	require.NoError(t, err)
	require.NoError(t, v.Set(1, 2))

	rhs := substitute.NewSparseVec(v)
	require.NoError(t, substitute.Forwards[float64](f, body, rhs))

	var idx []int
	var vals []float64
	rhs.Vector().Each(func(i int, x float64) {
		idx = append(idx, i)
		vals = append(vals, x)
	})
	assert.Equal(t, []int{1, 3}, idx)
	assert.Equal(t, []float64{1, -4}, vals)
}

func TestSingularPivot_LeavesRHSUntouched(t *testing.T) {
	f := arith.NewFloat64()
	body, err := substitute.NewDense(3, 3, []float64{
		1, 0, 0,
		1, 1, 0,
		1, 1, 1e-14,
	})
	require.NoError(t, err)
	x := []float64{1, 2, 3}
	err = substitute.Forwards[float64](f, body, substitute.Vec[float64](x))
	require.ErrorIs(t, err, matrix.ErrSingularPivot)

	var pe *matrix.PivotError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Index)
	assert.Equal(t, "Forwards", pe.Op)
	assert.Equal(t, []float64{1, 2, 3}, x)

	// Exact arithmetic accepts the same tiny pivot.
	rf := arith.Rational{}
	rbody, err := substitute.FromMatrix[*big.Rat](rf, mustRows(t, [][]float64{{1, 0, 0}, {1, 1, 0}, {1, 1, 1e-14}}))
	require.NoError(t, err)
	require.NoError(t, substitute.Forwards[*big.Rat](rf, rbody, substitute.Vec[*big.Rat](arith.FromFloats[*big.Rat](rf, x))))
}

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

func TestShapeErrors(t *testing.T) {
	f := arith.NewFloat64()
	body, err := substitute.NewDense(2, 2, []float64{1, 0, 0, 1})
	require.NoError(t, err)
	err = substitute.Backwards[float64](f, body, substitute.Vec[float64]([]float64{1}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	err = substitute.Backwards[float64](f, nil, substitute.Vec[float64]([]float64{1, 2}))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	err = substitute.Forwards[float64](f, body, substitute.Vec[float64]([]float64{1, 2}), substitute.WithColumns(0, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = substitute.NewDense(2, 2, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Panics(t, func() { substitute.WithOffset(-1) })
	require.Panics(t, func() { substitute.WithColumns(2, 1) })
}

func TestSolveColumns_MatchesSequential(t *testing.T) {
	f := arith.NewFloat64()
	const n, cols = 10, 7
	U := triangle(t, n, false, 31)
	body, err := substitute.SparseFromMatrix[float64](f, U)
	require.NoError(t, err)

	data := randomVec(n*cols, 32)
	seqData := append([]float64(nil), data...)

	par, err := substitute.NewDenseBlock(n, cols, data)
	require.NoError(t, err)
	seq, err := substitute.NewDenseBlock(n, cols, seqData)
	require.NoError(t, err)

	require.NoError(t, substitute.SolveColumns[float64](context.Background(), f, body, par, false))
	require.NoError(t, substitute.Backwards[float64](f, body, seq))
	assert.Equal(t, seqData, data)

	// Only the selected columns are touched.
	fresh := randomVec(n*cols, 33)
	before := append([]float64(nil), fresh...)
	blk, _ := substitute.NewDenseBlock(n, cols, fresh)
	require.NoError(t, substitute.SolveColumns[float64](context.Background(), f, body, blk, false, substitute.WithColumns(2, 4)))
	orig, _ := substitute.NewDenseBlock(n, cols, before)
	assert.Equal(t, orig.Column(0), blk.Column(0))
	assert.Equal(t, orig.Column(6), blk.Column(6))
	assert.NotEqual(t, orig.Column(2), blk.Column(2))
}

func TestSolveColumns_Cancelled(t *testing.T) {
	f := arith.NewFloat64()
	body, _ := substitute.NewDense(1, 1, []float64{2})
	blk, _ := substitute.NewDenseBlock(1, 3, []float64{2, 4, 6})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := substitute.SolveColumns[float64](ctx, f, body, blk, true)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFromGonum(t *testing.T) {
	f := arith.NewFloat64()
	g := mat.NewTriDense(3, mat.Upper, []float64{
		2, 1, 1,
		0, 4, 2,
		0, 0, 8,
	})
	body, err := substitute.FromGonum[float64](f, g)
	require.NoError(t, err)
	x := []float64{4, 6, 8}
	require.NoError(t, substitute.Backwards[float64](f, body, substitute.Vec[float64](x)))

	want := mat.NewVecDense(3, nil)
	require.NoError(t, want.SolveVec(g, mat.NewVecDense(3, []float64{4, 6, 8})))
	assert.True(t, floats.EqualApprox(want.RawVector().Data, x, tol))
}
