// SPDX-License-Identifier: MIT

package substitute

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/linsys/arith"
)

// SolveColumns runs Forwards (forwards == true) or Backwards over the selected
// RHS columns concurrently. Columns are independent; each one is still solved
// sequentially. rhs must tolerate concurrent Put calls on distinct columns,
// which DenseBlock does.
//
// Validation and pivot checks happen once, before any goroutine starts.
// Cancellation is observed between columns, never inside one.
func SolveColumns[T any](ctx context.Context, f arith.Field[T], body Body[T], rhs Block[T], forwards bool, opts ...Option) error {
	p, err := newPlan(f, body, rhs, forwards, gatherOptions(opts...))
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for c := p.first; c < p.limit; c++ {
		c := c
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			p.column(c)
			return nil
		})
	}

	return g.Wait()
}
