// Package linsys is the linear-algebra kernel of a revised-simplex solver:
// the pieces a simplex driver calls on every pivot, without the driver itself.
//
// What is inside?
//
//	equation/   - sparse row equations with a cached pivot, Gauss-Seidel and
//	              Jacobi sweeps, iterative System.Solve
//	factor/     - product form of the inverse: Identity and Elementary factors,
//	              Chain (FTran/BTran), Basis with refactorization policies,
//	              LU / Cholesky / gonum decomposers, Prometheus metrics
//	substitute/ - triangular substitution over any arith.Field, dense or CSR
//	              bodies, dense or sparse right-hand sides
//	arith/      - Field[T]: float64, complex128, *big.Rat, *big.Float
//	sparse/     - sorted sparse vector and CSR matrix
//	matrix/     - dense storage, error taxonomy, LU and Cholesky kernels
//
// Errors:
//
//	Every package reports the same sentinels from matrix: ErrSingularPivot
//	(carried by *matrix.PivotError), ErrDimensionMismatch and ErrOutOfRange.
//	Match them with errors.Is / errors.As.
//
// Quick example (two column swaps on the 3×3 identity):
//
//	c, _ := factor.NewChain(3)
//	_ = c.Append([]float64{8, 4, 2}, 2)
//	col := []float64{1, 1.5, 0.5}
//	_ = c.FTran(col)      // express the entering column in the current basis
//	_ = c.Append(col, 1)
//	x := []float64{6, 2, 1.5}
//	_ = c.FTran(x)        // x = [-2 -2 1.25]
//
//	go get github.com/katalvlaran/linsys
package linsys
