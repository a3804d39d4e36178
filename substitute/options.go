// SPDX-License-Identifier: MIT

// Package substitute: functional configuration of a triangular solve.
//   - Option / Options (functional options with internal state),
//   - WithX constructors (panic on nonsensical values),
//   - gatherOptions helper (internal).
package substitute

// ---------- Defaults ----------

const (
	// DefaultOffset solves from the top-left corner of the body.
	DefaultOffset = 0
	// toEnd marks an extent or column limit that runs to the last row/column.
	toEnd = -1
)

// ---------- Internal panic messages ----------

const (
	panicOffsetNegative = "substitute: WithOffset: offset must be >= 0"
	panicExtentNegative = "substitute: WithExtent: extent must be >= 0"
	panicColumnsInvalid = "substitute: WithColumns: need 0 <= first <= limit"
)

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options is the resolved configuration of one solve.
type Options struct {
	unit   bool // diagonal is implicitly 1 and never read
	conj   bool // entries are conjugated before use
	trans  bool // solve with the transpose of the body
	offset int  // first row/column of the diagonal sub-block
	extent int  // sub-block size; toEnd = up to the body's last row
	first  int  // first RHS column
	limit  int  // one past the last RHS column; toEnd = all
}

// WithUnit treats the body as unit-diagonal: no division, diagonal never read.
func WithUnit() Option { return func(o *Options) { o.unit = true } }

// WithConjugate conjugates every body entry before use (complex fields).
func WithConjugate() Option { return func(o *Options) { o.conj = true } }

// WithTranspose solves with Tᵗ instead of T.
// Forwards then expects an upper body and Backwards a lower one.
func WithTranspose() Option { return func(o *Options) { o.trans = true } }

// WithOffset solves the diagonal sub-block starting at (k, k) against rows k.. of the RHS.
func WithOffset(k int) Option {
	if k < 0 {
		panic(panicOffsetNegative)
	}

	return func(o *Options) { o.offset = k }
}

// WithExtent limits the sub-block to n rows and columns.
func WithExtent(n int) Option {
	if n < 0 {
		panic(panicExtentNegative)
	}

	return func(o *Options) { o.extent = n }
}

// WithColumns restricts the solve to RHS columns [first, limit).
func WithColumns(first, limit int) Option {
	if first < 0 || limit < first {
		panic(panicColumnsInvalid)
	}

	return func(o *Options) { o.first, o.limit = first, limit }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		offset: DefaultOffset,
		extent: toEnd,
		limit:  toEnd,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
