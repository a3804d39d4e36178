// Package substitute is the triangular substitution engine of linsys.
//
// Forwards and Backwards solve op(T)·X = B in place, overwriting B with X, for a
// triangular body T that is dense (Dense) or compressed (sparse.CSR) and a
// right-hand side that is a dense vector (Vec), a dense multi-column block
// (DenseBlock) or a sparse vector (SparseVec). The scalar type is any
// arith.Field, so the same loop serves float64, complex128, *big.Rat and
// *big.Float.
//
// Options select a unit diagonal (WithUnit), conjugated entries
// (WithConjugate), the transposed body (WithTranspose), a diagonal sub-block
// (WithOffset, WithExtent) and a range of RHS columns (WithColumns).
// SolveColumns spreads independent RHS columns across goroutines.
package substitute
