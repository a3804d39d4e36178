// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for the linear-algebra kernels.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsys/matrix"
)

func TestMul_FastPathMatchesFallback(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 4, 3)
	b := MustDense(t, 3, 5)
	RandomFill(t, a, 1)
	RandomFill(t, b, 2)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	RequireClose(t, fast, slow, 0)
	require.Equal(t, 4, fast.Rows())
	require.Equal(t, 5, fast.Cols())
}

func TestMul_Errors(t *testing.T) {
	a := MustDense(t, 2, 3)
	_, err := matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr, err := matrix.T(hide{m})
	require.NoError(t, err)
	RequireClose(t, MustRows(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}), tr, 0)
}

func TestMatVecAndMatTVec(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	y, err := matrix.MatVec(m, []float64{1, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1, -1}, y)

	z, err := matrix.MatTVec(m, []float64{1, 0, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 8}, z)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatTVec(m, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLU_Reconstructs checks P·A == L·U for random matrices on both code paths.
func TestLU_Reconstructs(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 5, 9} {
		a := MustDense(t, n, n)
		RandomFill(t, a, int64(n))
		for _, in := range []matrix.Matrix{a, hide{a}} {
			res, err := matrix.LU(in)
			require.NoError(t, err)

			lu, err := matrix.Mul(res.L, res.U)
			require.NoError(t, err)
			pa := MustDense(t, n, n)
			for i := 0; i < n; i++ {
				row, err := a.Row(res.Perm[i])
				require.NoError(t, err)
				for j, v := range row {
					require.NoError(t, pa.Set(i, j, v))
				}
			}
			RequireClose(t, pa, lu, 1e-12)

			for i := 0; i < n; i++ {
				require.Equal(t, 1.0, MustAt(t, res.L, i, i))
				for j := i + 1; j < n; j++ {
					require.Zero(t, MustAt(t, res.L, i, j))
					require.Zero(t, MustAt(t, res.U, j, i))
				}
			}
		}
	}
}

func TestLU_PivotsAroundLeadingZero(t *testing.T) {
	a := MustRows(t, [][]float64{{0, 1}, {1, 0}})
	res, err := matrix.LU(a)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, res.Perm)
}

func TestLU_SingularPivot(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {2, 4}})
	_, err := matrix.LU(a)
	require.ErrorIs(t, err, matrix.ErrSingularPivot)

	var pe *matrix.PivotError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 1, pe.Index)
	require.Equal(t, "LU", pe.Op)

	_, err = matrix.LU(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLU_EpsilonOption(t *testing.T) {
	a := MustRows(t, [][]float64{{1e-9, 0}, {0, 1e-9}})
	_, err := matrix.LU(a)
	require.NoError(t, err)
	_, err = matrix.LU(a, matrix.WithEpsilon(1e-6))
	require.ErrorIs(t, err, matrix.ErrSingularPivot)
}

func TestCholesky(t *testing.T) {
	a := MustRows(t, [][]float64{{4, 2, 2}, {2, 5, 3}, {2, 3, 6}})
	r, err := matrix.Cholesky(a)
	require.NoError(t, err)
	rt, err := matrix.Transpose(r)
	require.NoError(t, err)
	back, err := matrix.Mul(rt, r)
	require.NoError(t, err)
	RequireClose(t, a, back, 1e-12)
	require.Zero(t, MustAt(t, r, 2, 0))

	_, err = matrix.Cholesky(MustRows(t, [][]float64{{1, 2}, {2, 1}}))
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	_, err = matrix.Cholesky(MustRows(t, [][]float64{{1, 2}, {0, 1}}))
	require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
}

func TestResidualInf(t *testing.T) {
	a := MustRows(t, [][]float64{{2, 0}, {0, 4}})
	r, err := matrix.ResidualInf(a, []float64{1, 1}, []float64{2, 3})
	require.NoError(t, err)
	require.Equal(t, 1.0, r)
	_, err = matrix.ResidualInf(a, []float64{1, 1}, []float64{2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestIdentity(t *testing.T) {
	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	a := MustDense(t, 3, 3)
	RandomFill(t, a, 7)
	p, err := matrix.Mul(a, id)
	require.NoError(t, err)
	RequireClose(t, a, p, 0)
	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
