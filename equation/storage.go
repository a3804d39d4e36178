// SPDX-License-Identifier: MIT

package equation

import (
	"github.com/katalvlaran/linsys/sparse"
)

// storage is the coefficient backing of one row. Bounds are checked by the caller.
type storage interface {
	get(col int) float64
	// update replaces the coefficient at col with fn(old) and returns the new value.
	update(col int, fn func(old float64) float64) float64
	each(fn func(col int, v float64))
	count() int
	dot(x []float64) float64
}

// sparseRow keeps nonzeros sorted by column; exact zeros are dropped.
type sparseRow struct {
	v *sparse.Vector[float64]
}

func (r sparseRow) get(col int) float64 {
	v, _ := r.v.Get(col)

	return v
}

func (r sparseRow) update(col int, fn func(old float64) float64) float64 {
	nv, _ := r.v.Update(col, func(old float64, _ bool) (float64, bool) {
		n := fn(old)
		return n, n != 0
	})

	return nv
}

func (r sparseRow) each(fn func(col int, v float64)) { r.v.Each(fn) }
func (r sparseRow) count() int { return r.v.NNZ() }

func (r sparseRow) dot(x []float64) float64 {
	var acc float64
	r.v.Each(func(col int, v float64) { acc += v * x[col] })

	return acc
}

// denseRow stores every coefficient; it never resizes.
type denseRow []float64

func (r denseRow) get(col int) float64 { return r[col] }

func (r denseRow) update(col int, fn func(old float64) float64) float64 {
	r[col] = fn(r[col])

	return r[col]
}

func (r denseRow) each(fn func(col int, v float64)) {
	for col, v := range r {
		if v != 0 {
			fn(col, v)
		}
	}
}

func (r denseRow) count() int {
	n := 0
	for _, v := range r {
		if v != 0 {
			n++
		}
	}

	return n
}

func (r denseRow) dot(x []float64) float64 {
	var acc float64
	for col, v := range r {
		if v != 0 {
			acc += v * x[col]
		}
	}

	return acc
}
