package core

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

const batchConcurrency = 8

// runBatch applies fn to every key concurrently. A failing entry is recorded in the
// result and never stops the others.
func runBatch(ctx context.Context, keys []string, fn func(ctx context.Context, i int) error) *BatchResult {
	res := &BatchResult{Attempted: len(keys)}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i := range keys {
		i := i
		g.Go(func() error {
			err := fn(ctx, i)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures = append(res.Failures, BatchFailure{Key: keys[i], Reason: err.Error()})
				return nil
			}
			res.Applied++
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Failures, func(a, b int) bool { return res.Failures[a].Key < res.Failures[b].Key })
	return res
}
