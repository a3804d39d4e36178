// Package factor maintains the inverse of a basis matrix in product form.
//
// A Chain is a base factor (the identity, or a fresh LU/Cholesky
// decomposition) followed by elementary factors, one per replaced basis
// column. FTran solves B·x = v by applying the factors oldest first; BTran
// solves Bᵗ·y = v newest first. Appending is O(nnz) and Reset reuses the
// factor slice, so a long run of column swaps never touches the explicit
// matrix.
//
// Basis wraps a Chain together with the explicit matrix it represents. After
// every Replace a Policy (EveryK, DriftAbove, CondAbove, AnyOf) decides
// whether to fold the chain into a new decomposition, produced by a
// Decomposer: NewLUDecomposer and NewCholeskyDecomposer solve with the
// substitute engine, NewGonumLUDecomposer and NewGonumCholeskyDecomposer
// delegate to gonum/mat. Refactorizations are logged through log/slog and
// counted by optional Prometheus Metrics.
//
// A pivot within the configured tolerance (default matrix.DefaultEpsilon;
// exact zero always) is reported as *matrix.PivotError and leaves the chain
// unchanged.
package factor
