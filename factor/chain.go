// SPDX-License-Identifier: MIT

package factor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/linsys/matrix"
)

const opChain = "Chain"

// Chain is a product-form basis inverse: a base factor followed by the
// elementary updates applied since the last Reset.
//
//	B = F₀·E₁·E₂·…·E_k
//
// FTran applies F₀⁻¹ first and E_k⁻¹ last; BTran runs the other way.
// Mutation (Push, Append, Reset) needs external synchronization; concurrent
// FTran/BTran calls on distinct vectors are safe.
type Chain struct {
	n       int
	eps     float64
	factors []InvertibleFactor
}

var _ InvertibleFactor = (*Chain)(nil)

// NewChain returns an n×n chain seeded with the identity.
// Honors WithPivotTolerance for Append.
func NewChain(n int, opts ...Option) (*Chain, error) {
	id, err := NewIdentity(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opChain, err)
	}
	o := gatherOptions(opts...)

	return &Chain{n: n, eps: o.eps, factors: []InvertibleFactor{id}}, nil
}

func (c *Chain) Size() int { return c.n }

// Len returns the number of updates on top of the base factor.
func (c *Chain) Len() int { return len(c.factors) - 1 }

// Base returns the base factor.
func (c *Chain) Base() InvertibleFactor { return c.factors[0] }

// Push appends any factor of matching size.
func (c *Chain) Push(f InvertibleFactor) error {
	if f == nil {
		return fmt.Errorf("%s.Push: %w", opChain, matrix.ErrNilMatrix)
	}
	if f.Size() != c.n {
		return fmt.Errorf("%s.Push: size %d vs %d: %w", opChain, f.Size(), c.n, matrix.ErrDimensionMismatch)
	}
	c.factors = append(c.factors, f)

	return nil
}

// Append records a basis change: column must already be ftran'd through this
// chain, pos is the leaving position. On error the chain is unchanged.
func (c *Chain) Append(column []float64, pos int) error {
	if len(column) != c.n {
		return fmt.Errorf("%s.Append: len %d vs %d: %w", opChain, len(column), c.n, matrix.ErrDimensionMismatch)
	}
	e, err := NewElementary(column, pos, WithPivotTolerance(c.eps))
	if err != nil {
		return fmt.Errorf("%s.Append: %w", opChain, err)
	}
	c.factors = append(c.factors, e)

	return nil
}

// Reset drops every factor and installs base. The discarded factors are
// released; the backing array is reused.
func (c *Chain) Reset(base InvertibleFactor) error {
	if base == nil {
		return fmt.Errorf("%s.Reset: %w", opChain, matrix.ErrNilMatrix)
	}
	if base.Size() != c.n {
		return fmt.Errorf("%s.Reset: size %d vs %d: %w", opChain, base.Size(), c.n, matrix.ErrDimensionMismatch)
	}
	clear(c.factors[1:])
	c.factors = append(c.factors[:0], base)

	return nil
}

// FTran overwrites v with B⁻¹·v. v is only written when every factor succeeds.
func (c *Chain) FTran(v []float64) error {
	if err := checkLen(opChain+"."+opFTran, v, c.n); err != nil {
		return err
	}
	w := append([]float64(nil), v...)
	for _, f := range c.factors {
		if err := f.FTran(w); err != nil {
			return fmt.Errorf("%s.%s: %w", opChain, opFTran, err)
		}
	}
	copy(v, w)

	return nil
}

// BTran overwrites v with B⁻ᵗ·v. v is only written when every factor succeeds.
func (c *Chain) BTran(v []float64) error {
	if err := checkLen(opChain+"."+opBTran, v, c.n); err != nil {
		return err
	}
	w := append([]float64(nil), v...)
	for k := len(c.factors) - 1; k >= 0; k-- {
		if err := c.factors[k].BTran(w); err != nil {
			return fmt.Errorf("%s.%s: %w", opChain, opBTran, err)
		}
	}
	copy(v, w)

	return nil
}

// FTranAll transforms every vector of vs concurrently.
func (c *Chain) FTranAll(ctx context.Context, vs [][]float64) error {
	return transformAll(ctx, vs, c.FTran)
}

// BTranAll transforms every vector of vs concurrently.
func (c *Chain) BTranAll(ctx context.Context, vs [][]float64) error {
	return transformAll(ctx, vs, c.BTran)
}

func transformAll(ctx context.Context, vs [][]float64, fn func([]float64) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range vs {
		v := vs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(v)
		})
	}

	return g.Wait()
}
