package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 10

// ParallelMap applies fn to every item with at most maxConcurrency calls in
// flight. Results keep the order of items. The first error cancels the
// context handed to the remaining calls and is returned.
func ParallelMap[T, R any](ctx context.Context, items []T, fn func(context.Context, int, T) (R, error), maxConcurrency int) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if maxConcurrency <= 0 {
		maxConcurrency = defaultConcurrency
	}

	results := make([]R, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, i, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
