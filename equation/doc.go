// Package equation implements the row-oriented sparse linear equation used by
// relaxation solvers, and System, a list of such rows sorted by pivot index.
//
// An Equation stores the coefficients of one row (sparse by default, dense on
// request), its immutable pivot index and right-hand side, and a cached pivot
// value that always equals the coefficient at the pivot column. Adjust performs
// one Gauss-Seidel step on a shared solution vector; Initialise seeds it from
// scratch. Both fail with *matrix.PivotError on a (near) zero pivot.
//
// System adds sequential Gauss-Seidel sweeps, data-parallel Jacobi sweeps and
// an iterative Solve driven by functional options.
package equation
