// SPDX-License-Identifier: MIT

package sparse

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/katalvlaran/linsys/matrix"
)

type triplet[T any] struct {
	i, j int
	v    T
}

// Builder collects (i, j, v) triplets and compresses them into a CSR matrix.
type Builder[T any] struct {
	r, c    int
	data    []triplet[T]
	combine func(a, b T) T
}

// NewBuilder starts an r×c triplet builder. combine merges duplicate (i, j)
// entries in insertion order; nil keeps the last one.
func NewBuilder[T any](r, c int, combine func(a, b T) T) (*Builder[T], error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("sparse.NewBuilder(%d,%d): %w", r, c, matrix.ErrInvalidDimensions)
	}

	return &Builder[T]{r: r, c: c, combine: combine}, nil
}

// Dims returns the declared shape.
func (b *Builder[T]) Dims() (r, c int) { return b.r, b.c }

// Append records one entry.
func (b *Builder[T]) Append(i, j int, v T) error {
	if i < 0 || b.r <= i || j < 0 || b.c <= j {
		return fmt.Errorf("sparse.Builder.Append(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}
	b.data = append(b.data, triplet[T]{i, j, v})

	return nil
}

// Build compresses the triplets into CSR form. The builder stays usable.
func (b *Builder[T]) Build() *CSR[T] {
	ts := slices.Clone(b.data)
	slices.SortStableFunc(ts, func(x, y triplet[T]) int {
		if c := cmp.Compare(x.i, y.i); c != 0 {
			return c
		}
		return cmp.Compare(x.j, y.j)
	})

	m := &CSR[T]{
		r:      b.r,
		c:      b.c,
		rowPtr: make([]int, b.r+1),
		colIdx: make([]int, 0, len(ts)),
		vals:   make([]T, 0, len(ts)),
	}
	for k := 0; k < len(ts); k++ {
		t := ts[k]
		last := len(m.colIdx) - 1
		if last >= 0 && k > 0 && ts[k-1].i == t.i && ts[k-1].j == t.j {
			if b.combine != nil {
				m.vals[last] = b.combine(m.vals[last], t.v)
			} else {
				m.vals[last] = t.v
			}
			continue
		}
		m.colIdx = append(m.colIdx, t.j)
		m.vals = append(m.vals, t.v)
		m.rowPtr[t.i+1]++
	}
	for i := 0; i < b.r; i++ {
		m.rowPtr[i+1] += m.rowPtr[i]
	}

	return m
}

// CSR is a compressed sparse row matrix. Column indices are sorted within a row.
type CSR[T any] struct {
	r, c   int
	rowPtr []int
	colIdx []int
	vals   []T
}

// Dims returns the shape.
func (m *CSR[T]) Dims() (r, c int) { return m.r, m.c }

// NNZ returns the number of stored entries.
func (m *CSR[T]) NNZ() int { return len(m.vals) }

// At returns entry (i, j) and whether it is stored. Out-of-range reads report false.
func (m *CSR[T]) At(i, j int) (T, bool) {
	var zero T
	if i < 0 || i >= m.r {
		return zero, false
	}
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	cols := m.colIdx[lo:hi]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.vals[lo+k], true
	}

	return zero, false
}

// Row calls fn for every stored entry of row i in increasing column order.
func (m *CSR[T]) Row(i int, fn func(j int, v T)) {
	if i < 0 || i >= m.r {
		return
	}
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		fn(m.colIdx[k], m.vals[k])
	}
}

// CSRFromMatrix compresses m, skipping exact zeros, converting entries with conv.
func CSRFromMatrix[T any](m matrix.Matrix, conv func(float64) T) (*CSR[T], error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("sparse.CSRFromMatrix: %w", err)
	}
	b, err := NewBuilder[T](m.Rows(), m.Cols(), nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("sparse.CSRFromMatrix: %w", err)
			}
			if v != 0 {
				b.data = append(b.data, triplet[T]{i, j, conv(v)})
			}
		}
	}

	return b.Build(), nil
}
