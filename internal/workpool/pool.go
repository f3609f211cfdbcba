// Package workpool provides a bounded-concurrency fan-out used to score
// large candidate batches without spawning one goroutine per candidate.
package workpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds how many goroutines run fn concurrently across a Run call.
type Pool struct {
	workers int
}

// New returns a Pool with the given worker limit. workers <= 0 defaults to
// runtime.NumCPU().
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Run calls fn(i) for every i in [0, n), running at most p.workers calls
// concurrently. It stops dispatching new work and returns the first error
// (or ctx.Err()) once either occurs; calls already in flight are allowed to
// finish.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := 0; i < n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			return fn(i)
		})
	}
	return g.Wait()
}
