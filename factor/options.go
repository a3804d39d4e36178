// SPDX-License-Identifier: MIT

// Package factor: functional configuration shared by factors, chains,
// decomposers and the Basis owner.
//   - Defaults are the single source of truth (Default* constants).
//   - WithX constructors panic only on nonsensical values.

package factor

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/linsys/matrix"
)

// ---------- Defaults ----------

const (
	// DefaultPivotTolerance: an elementary pivot p with |p| <= tol is singular.
	DefaultPivotTolerance = matrix.DefaultEpsilon

	// DefaultRefactorEvery is the K of the default EveryK policy.
	DefaultRefactorEvery = 64
)

const (
	panicToleranceInvalid = "factor: WithPivotTolerance: tolerance must be finite and >= 0"
	panicNilPolicy        = "factor: WithPolicy: nil policy"
	panicNilDecomposer    = "factor: WithDecomposer: nil decomposer"
)

// Option configures NewElementary, NewChain, the decomposers and NewBasis.
// Each consumer reads only the fields it needs.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	eps          float64
	sparseBodies bool
	logger       *slog.Logger
	metrics      *Metrics
	policy       Policy
	decomposer   Decomposer
	driftCheck   bool
}

// WithPivotTolerance sets the singular-pivot tolerance.
func WithPivotTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithSparseBodies makes LU/Cholesky decomposers store their triangles in CSR form.
func WithSparseBodies() Option { return func(o *Options) { o.sparseBodies = true } }

// WithLogger routes Basis records to l; nil restores the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithMetrics attaches Prometheus collectors to a Basis.
func WithMetrics(m *Metrics) Option { return func(o *Options) { o.metrics = m } }

// WithPolicy sets the refactorization policy of a Basis.
func WithPolicy(p Policy) Option {
	if p == nil {
		panic(panicNilPolicy)
	}

	return func(o *Options) { o.policy = p }
}

// WithDecomposer sets the refactorization provider of a Basis.
func WithDecomposer(d Decomposer) Option {
	if d == nil {
		panic(panicNilDecomposer)
	}

	return func(o *Options) { o.decomposer = d }
}

// WithDriftCheck makes Basis measure ‖B·FTran(p) - p‖∞ for a fixed probe p
// after every update (O(n²)). DriftAbove policies need it.
func WithDriftCheck() Option { return func(o *Options) { o.driftCheck = true } }

func gatherOptions(user ...Option) Options {
	o := Options{
		eps:    DefaultPivotTolerance,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
