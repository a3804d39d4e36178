// SPDX-License-Identifier: MIT

// Package equation: functional configuration.
//   - Option configures one Equation (backing storage, pivot tolerance).
//   - SolveOption configures System.Solve (tolerance, sweep budget, relaxation,
//     sweep kind, logger).
//
// Constructors panic only on nonsensical values (programmer error).
package equation

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/linsys/matrix"
)

// ---------- Defaults ----------

const (
	// DefaultPivotTolerance: |pivot| <= tol is singular; exactly zero always is.
	DefaultPivotTolerance = matrix.DefaultEpsilon

	// DefaultTolerance stops Solve once the residual 2-norm of a sweep is at most this.
	DefaultTolerance = 1e-10

	// DefaultMaxSweeps bounds the number of sweeps Solve performs.
	DefaultMaxSweeps = 1000

	// DefaultRelaxation is plain Gauss-Seidel.
	DefaultRelaxation = 1.0
)

const (
	panicToleranceInvalid  = "equation: tolerance must be finite and >= 0"
	panicHintNegative      = "equation: WithSparse: hint must be >= 0"
	panicMaxSweepsInvalid  = "equation: WithMaxSweeps: sweeps must be > 0"
	panicRelaxationInvalid = "equation: WithRelaxation: relaxation must be finite"
)

// Option configures New.
type Option func(*Options)

// Options is the resolved Equation configuration.
type Options struct {
	dense    bool
	hint     int
	pivotEps float64
}

// WithSparse selects sorted sparse backing with room for hint nonzeros (default).
func WithSparse(hint int) Option {
	if hint < 0 {
		panic(panicHintNegative)
	}

	return func(o *Options) { o.dense, o.hint = false, hint }
}

// WithDense selects a dense backing of exactly cols coefficients.
func WithDense() Option { return func(o *Options) { o.dense = true } }

// WithPivotTolerance sets the singular-pivot tolerance used by Adjust/Initialise.
func WithPivotTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.pivotEps = eps }
}

func gatherOptions(user ...Option) Options {
	o := Options{pivotEps: DefaultPivotTolerance}
	for _, set := range user {
		set(&o)
	}

	return o
}

// SolveOption configures System.Solve.
type SolveOption func(*SolveOptions)

// SolveOptions is the resolved Solve configuration.
type SolveOptions struct {
	tol        float64
	maxSweeps  int
	relaxation float64
	jacobi     bool
	logger     *slog.Logger
}

// WithTolerance sets the residual 2-norm at which Solve reports convergence.
func WithTolerance(tol float64) SolveOption {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *SolveOptions) { o.tol = tol }
}

// WithMaxSweeps bounds the number of sweeps.
func WithMaxSweeps(n int) SolveOption {
	if n <= 0 {
		panic(panicMaxSweepsInvalid)
	}

	return func(o *SolveOptions) { o.maxSweeps = n }
}

// WithRelaxation sets the over/under-relaxation factor. Values outside (0, 2)
// are accepted and may diverge.
func WithRelaxation(w float64) SolveOption {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		panic(panicRelaxationInvalid)
	}

	return func(o *SolveOptions) { o.relaxation = w }
}

// WithJacobi switches Solve to data-parallel Jacobi sweeps.
func WithJacobi() SolveOption { return func(o *SolveOptions) { o.jacobi = true } }

// WithLogger routes progress records to l; nil restores the discarding default.
func WithLogger(l *slog.Logger) SolveOption {
	return func(o *SolveOptions) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func gatherSolveOptions(user ...SolveOption) SolveOptions {
	o := SolveOptions{
		tol:        DefaultTolerance,
		maxSweeps:  DefaultMaxSweeps,
		relaxation: DefaultRelaxation,
		logger:     discardLogger(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
