// SPDX-License-Identifier: MIT

// Package matrix - concurrent work over disjoint stripes.
//
// HSplitAt/VSplitAt (and therefore HStripes/VStripes) yield pieces whose element sets
// are provably disjoint, so each mutable stripe may be handed to its own goroutine.
// Every stripe shares the parent borrow.
//
// The borrow guard checks before it accesses, so it does not order memory between
// goroutines: do not touch the owner (At, Set, View, ViewMut, ...) or re-borrow the
// parent until the call returns. Doing so is a data race, not an ErrBorrowConflict.
// Inside fn, stay within the stripe: RowMut/ColMut/DiagMut/SliceMut hand the buffer's
// borrow over and would end the sibling stripes.
//
// Behavior highlights:
//   - At most Workers() goroutines run fn at once (WithWorkers, default GOMAXPROCS).
//   - The first error cancels the context passed to the remaining calls and is
//     returned; stripes already running finish.
package matrix

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// StripeFunc processes stripe i of a partition.
type StripeFunc[T any] func(ctx context.Context, i int, stripe StridedMatMut[T]) error

// ParallelHStripes runs fn on each horizontal stripe of size rows concurrently.
//
// Errors: ErrBorrowConflict, ErrInvalidDimensions (size < 1), ErrNilOperand (nil fn),
// the context error, or the first error returned by fn.
func ParallelHStripes[T any](ctx context.Context, dst StridedMatMut[T], size int, fn StripeFunc[T], opts ...Option) error {
	it, err := dst.HStripesMut(size)
	if err != nil {
		return fmt.Errorf("ParallelHStripes: %w", err)
	}

	return runStripes(ctx, "ParallelHStripes", it, fn, opts)
}

// ParallelVStripes runs fn on each vertical stripe of size columns concurrently.
func ParallelVStripes[T any](ctx context.Context, dst StridedMatMut[T], size int, fn StripeFunc[T], opts ...Option) error {
	it, err := dst.VStripesMut(size)
	if err != nil {
		return fmt.Errorf("ParallelVStripes: %w", err)
	}

	return runStripes(ctx, "ParallelVStripes", it, fn, opts)
}

func runStripes[T any](ctx context.Context, tag string, it *StripeIterMut[T], fn StripeFunc[T], opts []Option) error {
	if fn == nil {
		return fmt.Errorf("%s: %w", tag, ErrNilOperand)
	}
	o := gatherOptions(opts...)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	o.logger.Debug().Str("op", tag).Int("stripes", it.Len()).Int("workers", o.workers).Msg("matrix dispatch")

	for i := 0; ; i++ {
		stripe, ok := it.Next()
		if !ok {
			break
		}
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i, stripe)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", tag, err)
	}

	return nil
}
