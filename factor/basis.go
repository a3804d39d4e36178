// SPDX-License-Identifier: MIT

package factor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/linsys/matrix"
)

const opBasis = "Basis"

// Basis owns an explicit basis matrix B and its product-form inverse.
// Replace swaps one column and appends an elementary factor; the Policy decides
// when the chain is folded back into a fresh decomposition of B.
//
// A Basis is not safe for concurrent mutation. FTran/BTran (and the *All
// variants) may run concurrently with each other.
type Basis struct {
	b       *matrix.Dense
	chain   *Chain
	probe   []float64 // fixed drift probe, nil without WithDriftCheck
	stats   Stats
	policy  Policy
	dec     Decomposer
	logger  *slog.Logger
	metrics *Metrics
}

// NewBasis copies b and performs the initial refactorization.
//
// Defaults: EveryK(DefaultRefactorEvery), NewLUDecomposer(opts...), a
// discarding logger and no metrics.
func NewBasis(b matrix.Matrix, opts ...Option) (*Basis, error) {
	if err := matrix.ValidateSquareNonNil(b); err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}
	o := gatherOptions(opts...)
	if o.policy == nil {
		o.policy = EveryK(DefaultRefactorEvery)
	}
	if o.decomposer == nil {
		o.decomposer = NewLUDecomposer(opts...)
	}
	n := b.Rows()
	own, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			v, err := b.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opBasis, err)
			}
			if err = own.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("%s: %w", opBasis, err)
			}
		}
	}
	chain, err := NewChain(n, WithPivotTolerance(o.eps))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opBasis, err)
	}
	bs := &Basis{
		b:       own,
		chain:   chain,
		policy:  o.policy,
		dec:     o.decomposer,
		logger:  o.logger,
		metrics: o.metrics,
	}
	if o.driftCheck {
		bs.probe = make([]float64, n)
		for i := range bs.probe {
			bs.probe[i] = 1 / float64(i+1)
		}
	}
	if err = bs.refactor(ReasonInitial); err != nil {
		return nil, err
	}

	return bs, nil
}

func (bs *Basis) Size() int { return bs.chain.Size() }

// Stats returns a snapshot of the update bookkeeping.
func (bs *Basis) Stats() Stats { return bs.stats }

// Matrix returns a copy of the current explicit basis.
func (bs *Basis) Matrix() *matrix.Dense { return bs.b.Clone().(*matrix.Dense) }

// Chain exposes the factor chain for read-only use.
func (bs *Basis) Chain() *Chain { return bs.chain }

// Replace makes raw (in original coordinates) the basis column at pos.
// On error the basis, its chain and stats are unchanged, except that a failed
// policy-triggered refactorization leaves the already applied update in place.
//
// Errors:
//   - matrix.ErrDimensionMismatch, matrix.ErrOutOfRange, matrix.ErrNaNInf.
//   - *matrix.PivotError when the column would make B singular.
//   - the decomposer error of a failed refactorization.
func (bs *Basis) Replace(pos int, raw []float64) error {
	n := bs.Size()
	if len(raw) != n {
		return fmt.Errorf("%s.Replace: len %d vs %d: %w", opBasis, len(raw), n, matrix.ErrDimensionMismatch)
	}
	if pos < 0 || pos >= n {
		return fmt.Errorf("%s.Replace: pos %d of %d: %w", opBasis, pos, n, matrix.ErrOutOfRange)
	}
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s.Replace: %w", opBasis, matrix.ErrNaNInf)
		}
	}

	col := append([]float64(nil), raw...)
	if err := bs.chain.FTran(col); err != nil {
		return fmt.Errorf("%s.Replace: %w", opBasis, err)
	}
	e, err := NewElementary(col, pos, WithPivotTolerance(bs.chain.eps))
	if err != nil {
		return fmt.Errorf("%s.Replace: %w", opBasis, err)
	}
	if err = bs.b.SetColumn(pos, raw); err != nil {
		return fmt.Errorf("%s.Replace: %w", opBasis, err)
	}
	_ = bs.chain.Push(e) // sizes agree by construction

	bs.stats.Updates++
	bs.metrics.update(bs.chain.Len())
	if bs.probe != nil {
		bs.stats.Drift = bs.drift()
	}
	bs.logger.Debug("factor: basis updated",
		slog.Int("pos", pos),
		slog.Float64("pivot", e.Pivot()),
		slog.Int("chain", bs.chain.Len()))

	if ok, reason := bs.policy.Refactor(bs.stats); ok {
		return bs.refactor(reason)
	}

	return nil
}

// Refactor folds the chain into a fresh decomposition of the current basis.
func (bs *Basis) Refactor() error { return bs.refactor(ReasonManual) }

func (bs *Basis) refactor(reason Reason) error {
	start := time.Now()
	base, err := bs.dec.Decompose(bs.b)
	if err != nil {
		bs.logger.Warn("factor: refactorization failed",
			slog.String("reason", string(reason)),
			slog.Any("err", err))

		return fmt.Errorf("%s.Refactor(%s): %w", opBasis, reason, err)
	}
	if err = bs.chain.Reset(base); err != nil {
		return fmt.Errorf("%s.Refactor(%s): %w", opBasis, reason, err)
	}
	took := time.Since(start)

	folded := bs.stats.Updates
	bs.stats.Updates = 0
	bs.stats.Refactorizations++
	bs.stats.Drift = 0
	bs.stats.Cond = 0
	if c, ok := base.(Conditioner); ok {
		bs.stats.Cond = c.Cond()
	}
	bs.stats.LastReason = reason
	bs.metrics.refactor(reason, took)
	bs.logger.Info("factor: basis refactorized",
		slog.String("reason", string(reason)),
		slog.Int("folded", folded),
		slog.Float64("cond", bs.stats.Cond),
		slog.Duration("took", took))

	return nil
}

// drift returns ‖B·FTran(p) - p‖∞ for the fixed probe, or +Inf when the chain
// cannot transform it.
func (bs *Basis) drift() float64 {
	x := append([]float64(nil), bs.probe...)
	if err := bs.chain.FTran(x); err != nil {
		return math.Inf(1)
	}
	r, err := matrix.ResidualInf(bs.b, x, bs.probe)
	if err != nil {
		return math.Inf(1)
	}

	return r
}

// FTran overwrites v with B⁻¹·v.
func (bs *Basis) FTran(v []float64) error { return bs.chain.FTran(v) }

// BTran overwrites v with B⁻ᵗ·v.
func (bs *Basis) BTran(v []float64) error { return bs.chain.BTran(v) }

// FTranAll transforms every vector of vs concurrently.
func (bs *Basis) FTranAll(ctx context.Context, vs [][]float64) error {
	return bs.chain.FTranAll(ctx, vs)
}

// BTranAll transforms every vector of vs concurrently.
func (bs *Basis) BTranAll(ctx context.Context, vs [][]float64) error {
	return bs.chain.BTranAll(ctx, vs)
}
