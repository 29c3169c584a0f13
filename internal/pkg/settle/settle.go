// Package settle provides a bounded "gather all, collect result-or-error"
// fan-out primitive. Callers get one Result per input regardless of how many
// inputs fail, which keeps partial-failure handling in a single place instead
// of scattered per-branch recovery.
package settle

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result carries either a value or the error that produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// All runs fn once per input, at most limit at a time, and returns the
// results in input order. It never short-circuits: every input is attempted
// unless the context is cancelled first, in which case the remaining results
// carry the context error.
func All[In, Out any](ctx context.Context, limit int64, inputs []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(inputs))
	if len(inputs) == 0 {
		return results
	}
	if limit <= 0 {
		limit = int64(len(inputs))
	}

	sem := semaphore.NewWeighted(limit)
	var wg sync.WaitGroup
	for i, in := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}
		wg.Add(1)
		go func(i int, in In) {
			defer wg.Done()
			defer sem.Release(1)
			results[i].Value, results[i].Err = fn(ctx, in)
		}(i, in)
	}
	wg.Wait()
	return results
}
