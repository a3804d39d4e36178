// SPDX-License-Identifier: MIT

package equation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const opSolve = "Solve"

// Result summarizes a Solve run.
type Result struct {
	Sweeps    int     // sweeps performed
	Residual  float64 // residual 2-norm reported by the last sweep
	Converged bool
}

// Solve relaxes x in place until a sweep reports a residual 2-norm at or below the
// tolerance. Sweeps are Gauss-Seidel unless WithJacobi is given.
//
// Errors:
//   - ErrNotConverged (wrapped) after the sweep budget; x holds the last iterate.
//   - ctx.Err() when cancelled between sweeps.
//   - any error of Sweep/JacobiSweep (dimension mismatch, singular pivot).
func (s *System) Solve(ctx context.Context, x []float64, opts ...SolveOption) (Result, error) {
	o := gatherSolveOptions(opts...)
	log := o.logger.With(slog.Int("rows", s.Len()), slog.Bool("jacobi", o.jacobi))
	start := time.Now()

	var res Result
	for res.Sweeps < o.maxSweeps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var (
			norm float64
			err  error
		)
		if o.jacobi {
			norm, err = s.JacobiSweep(ctx, x, o.relaxation)
		} else {
			norm, err = s.Sweep(x, o.relaxation)
		}
		if err != nil {
			log.Warn("equation: sweep failed", slog.Int("sweep", res.Sweeps+1), slog.String("error", err.Error()))
			return res, fmt.Errorf("%s: %w", opSolve, err)
		}
		res.Sweeps++
		res.Residual = norm
		log.Debug("equation: sweep complete", slog.Int("sweep", res.Sweeps), slog.Float64("residual", norm))

		if norm <= o.tol {
			res.Converged = true
			log.Info("equation: converged",
				slog.Int("sweeps", res.Sweeps),
				slog.Float64("residual", norm),
				slog.Duration("elapsed", time.Since(start)))
			return res, nil
		}
	}

	log.Warn("equation: did not converge",
		slog.Int("sweeps", res.Sweeps),
		slog.Float64("residual", res.Residual),
		slog.Float64("tolerance", o.tol))

	return res, fmt.Errorf("%s: %d sweeps, residual %g > %g: %w", opSolve, res.Sweeps, res.Residual, o.tol, ErrNotConverged)
}
