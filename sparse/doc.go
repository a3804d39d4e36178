// Package sparse holds the generic sparse containers of linsys: a sorted
// index/value Vector used for equation rows, elementary factor columns and sparse
// right-hand sides, and a CSR matrix assembled from triplets for sparse
// triangular bodies.
package sparse
