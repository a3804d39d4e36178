// SPDX-License-Identifier: MIT

// Package sparse - sorted index/value sparse vector.
//
// Purpose:
//   - Store at most one entry per index in two parallel slices kept sorted by index.
//   - Give O(log nnz) lookup, O(nnz) ordered iteration, amortized O(nnz) insertion.
//
// Notes:
//   - The vector never decides what "zero" means for T: callers delete explicitly.
//     Equations drop exact zeros; substitution right-hand sides keep fill-in.

package sparse

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/linsys/matrix"
)

// Vector is a sparse vector of declared length with entries sorted by index.
type Vector[T any] struct {
	length  int
	indices []int
	values  []T
}

// NewVector creates an empty vector of the given length with room for hint entries.
func NewVector[T any](length, hint int) (*Vector[T], error) {
	if length < 0 {
		return nil, fmt.Errorf("sparse.NewVector(%d): %w", length, matrix.ErrInvalidDimensions)
	}
	if hint < 0 {
		hint = 0
	}

	return &Vector[T]{
		length:  length,
		indices: make([]int, 0, hint),
		values:  make([]T, 0, hint),
	}, nil
}

// Len returns the declared length.
func (v *Vector[T]) Len() int { return v.length }

// NNZ returns the number of stored entries.
func (v *Vector[T]) NNZ() int { return len(v.indices) }

// search returns the position where index is or would be inserted.
func (v *Vector[T]) search(index int) int {
	return sort.Search(len(v.indices), func(i int) bool {
		return v.indices[i] >= index
	})
}

func (v *Vector[T]) check(index int) error {
	if index < 0 || index >= v.length {
		return fmt.Errorf("sparse.Vector[%d] (len %d): %w", index, v.length, matrix.ErrOutOfRange)
	}

	return nil
}

// Get returns the entry at index and whether it is stored.
// Out-of-range indices report (zero value, false).
func (v *Vector[T]) Get(index int) (T, bool) {
	pos := v.search(index)
	if pos < len(v.indices) && v.indices[pos] == index {
		return v.values[pos], true
	}
	var zero T

	return zero, false
}

// Set stores value at index, inserting when absent.
func (v *Vector[T]) Set(index int, value T) error {
	if err := v.check(index); err != nil {
		return err
	}
	pos := v.search(index)
	if pos < len(v.indices) && v.indices[pos] == index {
		v.values[pos] = value
		return nil
	}
	v.insertElement(index, value, pos)

	return nil
}

// Delete removes the entry at index; deleting an absent entry is a no-op.
func (v *Vector[T]) Delete(index int) error {
	if err := v.check(index); err != nil {
		return err
	}
	pos := v.search(index)
	if pos < len(v.indices) && v.indices[pos] == index {
		v.deleteElement(pos)
	}

	return nil
}

// Update is the read-modify-write primitive: fn receives the current value (and
// whether it is stored) and returns the new value and whether to keep it.
// It returns the value finally stored (zero value when dropped).
func (v *Vector[T]) Update(index int, fn func(old T, ok bool) (T, bool)) (T, error) {
	var zero T
	if err := v.check(index); err != nil {
		return zero, err
	}
	pos := v.search(index)
	present := pos < len(v.indices) && v.indices[pos] == index
	old := zero
	if present {
		old = v.values[pos]
	}
	nv, keep := fn(old, present)
	switch {
	case keep && present:
		v.values[pos] = nv
	case keep:
		v.insertElement(index, nv, pos)
	case present:
		v.deleteElement(pos)
		nv = zero
	default:
		nv = zero
	}

	return nv, nil
}

// Each calls fn for every stored entry in increasing index order.
func (v *Vector[T]) Each(fn func(index int, value T)) {
	for k, idx := range v.indices {
		fn(idx, v.values[k])
	}
}

// Reset drops every entry and keeps the allocated capacity.
func (v *Vector[T]) Reset() {
	v.indices = v.indices[:0]
	v.values = v.values[:0]
}

// Clone returns an independent copy. Pointer-typed values are shared.
func (v *Vector[T]) Clone() *Vector[T] {
	out := &Vector[T]{
		length:  v.length,
		indices: make([]int, len(v.indices)),
		values:  make([]T, len(v.values)),
	}
	copy(out.indices, v.indices)
	copy(out.values, v.values)

	return out
}

func (v *Vector[T]) deleteElement(pos int) {
	v.indices = append(v.indices[:pos], v.indices[pos+1:]...)
	v.values = append(v.values[:pos], v.values[pos+1:]...)
}

func (v *Vector[T]) insertElement(index int, value T, pos int) {
	var zero T
	v.indices = append(v.indices, 0)
	v.values = append(v.values, zero)
	copy(v.indices[pos+1:], v.indices[pos:])
	copy(v.values[pos+1:], v.values[pos:])
	v.indices[pos] = index
	v.values[pos] = value
}

// FromDense builds a Vector holding every x[i] for which keep(x[i]) is true.
func FromDense[T any](x []T, keep func(T) bool) *Vector[T] {
	v := &Vector[T]{length: len(x)}
	for i, xi := range x {
		if keep(xi) {
			v.indices = append(v.indices, i)
			v.values = append(v.values, xi)
		}
	}

	return v
}

// NonZero is the keep predicate for float64 that drops exact zeros.
func NonZero(x float64) bool { return x != 0 }
