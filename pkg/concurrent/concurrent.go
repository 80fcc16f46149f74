package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/lightcycle/pkg/sequence"
)

// Map applies mapFn to every element with at most workers goroutines and
// keeps input order in the result. The first error cancels ctx for the
// remaining calls and is returned. workers <= 0 means unbounded.
func Map[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	group, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}
	for idx, val := range in {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := mapFn(gctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
