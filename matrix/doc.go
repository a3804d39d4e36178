// Package matrix is the dense foundation of linsys.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe (error-returning) accessors and
//     column helpers used by the basis owner to swap one column per simplex pivot.
//   - The module-wide error taxonomy: ErrSingularPivot (wrapped by *PivotError),
//     ErrDimensionMismatch and ErrOutOfRange, plus shape/numeric sentinels.
//   - The numeric policy (Options, WithEpsilon, IsSmall) shared by every float64 kernel.
//   - Direct factorizations used as refactorization providers: LU with partial
//     pivoting (P·A = L·U) and Cholesky (A = Rᵀ·R).
//   - Verification helpers: Mul, Transpose, MatVec, MatTVec, ResidualInf.
//
// The sparse and generic machinery lives in sibling packages: sparse, arith,
// substitute, equation and factor.
package matrix
