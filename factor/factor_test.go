// SPDX-License-Identifier: MIT

package factor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsys/factor"
	"github.com/katalvlaran/linsys/matrix"
)

// wellConditioned returns an n×n strictly diagonally dominant matrix.
func wellConditioned(n int, seed int64) *matrix.Dense {
	rng := rand.New(rand.NewSource(seed))
	a, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		var off float64
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			v := 2*rng.Float64() - 1
			off += math.Abs(v)
			_ = a.Set(i, j, v)
		}
		_ = a.Set(i, i, off+1+rng.Float64())
	}

	return a
}

// spd returns AᵗA + I for a random A.
func spd(n int, seed int64) *matrix.Dense {
	a := wellConditioned(n, seed)
	at, _ := matrix.Transpose(a)
	m, _ := matrix.Mul(at, a)
	for i := 0; i < n; i++ {
		v, _ := m.At(i, i)
		_ = m.Set(i, i, v+1)
	}

	return m
}

func identity3() *matrix.Dense {
	id, _ := matrix.NewIdentity(3)

	return id
}

func randomVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = 10*rng.Float64() - 5
	}

	return v
}

func TestIdentity_BitForBit(t *testing.T) {
	id, err := factor.NewIdentity(5)
	require.NoError(t, err)
	in := []float64{math.Copysign(0, -1), math.NaN(), math.Inf(-1), 5e-324, 1.0 / 3}
	v := append([]float64(nil), in...)

	require.NoError(t, id.FTran(v))
	require.NoError(t, id.BTran(v))
	for i := range in {
		assert.Equal(t, math.Float64bits(in[i]), math.Float64bits(v[i]), "entry %d", i)
	}

	require.ErrorIs(t, id.FTran(make([]float64, 4)), matrix.ErrDimensionMismatch)
	_, err = factor.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestElementary_Transforms(t *testing.T) {
	col := []float64{8, 4, 2}
	e, err := factor.NewElementary(col, 2)
	require.NoError(t, err)
	col[0] = 100 // the factor keeps its own copy
	require.Equal(t, []float64{8, 4, 2}, e.Column())
	require.Equal(t, 2, e.Pos())
	require.Equal(t, 2.0, e.Pivot())

	// E = [[1,0,8],[0,1,4],[0,0,2]]
	v := []float64{1, 1.5, 0.5}
	require.NoError(t, e.FTran(v))
	require.Equal(t, []float64{-1, 0.5, 0.25}, v)

	// Eᵗ = [[1,0,0],[0,1,0],[8,4,2]]; Eᵗ·[1,2,3] = [1,2,22]
	w := []float64{1, 2, 22}
	require.NoError(t, e.BTran(w))
	require.Equal(t, []float64{1, 2, 3}, w)

	require.ErrorIs(t, e.FTran([]float64{1}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, e.BTran([]float64{1}), matrix.ErrDimensionMismatch)
}

func TestElementary_SingularPivot(t *testing.T) {
	_, err := factor.NewElementary([]float64{1, 0, 2}, 1)
	require.ErrorIs(t, err, matrix.ErrSingularPivot)
	var pe *matrix.PivotError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Index)

	// A zero tolerance still rejects an exact zero.
	_, err = factor.NewElementary([]float64{1, 0, 2}, 1, factor.WithPivotTolerance(0))
	require.ErrorIs(t, err, matrix.ErrSingularPivot)
	_, err = factor.NewElementary([]float64{1, 1e-13, 2}, 1, factor.WithPivotTolerance(0))
	require.NoError(t, err)
	_, err = factor.NewElementary([]float64{1, 1e-13, 2}, 1)
	require.ErrorIs(t, err, matrix.ErrSingularPivot)

	_, err = factor.NewElementary([]float64{1, 2}, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = factor.NewElementary(nil, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	require.Panics(t, func() { factor.WithPivotTolerance(-1) })
}

var decomposers = []struct {
	name string
	spd  bool
	dec  factor.Decomposer
}{
	{"lu-dense", false, factor.NewLUDecomposer()},
	{"lu-sparse", false, factor.NewLUDecomposer(factor.WithSparseBodies())},
	{"gonum-lu", false, factor.NewGonumLUDecomposer()},
	{"cholesky-dense", true, factor.NewCholeskyDecomposer()},
	{"cholesky-sparse", true, factor.NewCholeskyDecomposer(factor.WithSparseBodies())},
	{"gonum-cholesky", true, factor.NewGonumCholeskyDecomposer()},
}

// TestDecomposers_RoundTrip checks B·FTran(v) = v and Bᵗ·BTran(v) = v.
func TestDecomposers_RoundTrip(t *testing.T) {
	const n = 12
	for _, tc := range decomposers {
		t.Run(tc.name, func(t *testing.T) {
			b := wellConditioned(n, 7)
			if tc.spd {
				b = spd(n, 7)
			}
			f, err := tc.dec.Decompose(b)
			require.NoError(t, err)
			require.Equal(t, n, f.Size())

			rhs := randomVec(n, 11)
			x := append([]float64(nil), rhs...)
			require.NoError(t, f.FTran(x))
			r, err := matrix.ResidualInf(b, x, rhs)
			require.NoError(t, err)
			assert.Less(t, r, 1e-10)

			y := append([]float64(nil), rhs...)
			require.NoError(t, f.BTran(y))
			bty, err := matrix.MatTVec(b, y)
			require.NoError(t, err)
			for i := range rhs {
				assert.InDelta(t, rhs[i], bty[i], 1e-10)
			}

			c, ok := f.(factor.Conditioner)
			require.True(t, ok)
			assert.GreaterOrEqual(t, c.Cond(), 1.0)

			require.ErrorIs(t, f.FTran(make([]float64, n+1)), matrix.ErrDimensionMismatch)
		})
	}
}

func TestDecomposers_Failures(t *testing.T) {
	singular, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {2, 4}})
	require.NoError(t, err)
	for _, dec := range []factor.Decomposer{factor.NewLUDecomposer(), factor.NewGonumLUDecomposer()} {
		_, err = dec.Decompose(singular)
		require.ErrorIs(t, err, matrix.ErrSingularPivot)
	}

	asym, err := matrix.NewDenseFromRows([][]float64{{2, 1}, {0, 2}})
	require.NoError(t, err)
	indefinite, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {2, 1}})
	require.NoError(t, err)
	for _, dec := range []factor.Decomposer{factor.NewCholeskyDecomposer(), factor.NewGonumCholeskyDecomposer()} {
		_, err = dec.Decompose(asym)
		require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
		_, err = dec.Decompose(indefinite)
		require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
	}

	wide, _ := matrix.NewDense(2, 3)
	_, err = factor.NewLUDecomposer().Decompose(wide)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = factor.NewLU(nil, false)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
