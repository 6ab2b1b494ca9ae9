// ABOUTME: Bounded worker pool for running independent jobs concurrently
// ABOUTME: Used by the CLI to fetch and export several analyses at once

// Package pool runs tasks on a fixed number of goroutines.
package pool

import (
	"context"
	"runtime"
	"sync"
)

// Pool runs submitted tasks on a fixed set of workers
type Pool struct {
	size      int
	tasks     chan func()
	workers   sync.WaitGroup // worker goroutine lifetime
	pending   sync.WaitGroup // submitted tasks not yet finished
	closeOnce sync.Once
}

// New starts a pool of size workers. A size of zero or less uses one worker per CPU.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		size:  size,
		tasks: make(chan func()),
	}

	for range size {
		p.workers.Add(1)

		go func() {
			defer p.workers.Done()

			for task := range p.tasks {
				task()
				p.pending.Done()
			}
		}()
	}

	return p
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// Submit hands task to a free worker, blocking until one is available.
// It returns ctx.Err() without running task if ctx ends first.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.pending.Add(1)

	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		p.pending.Done()

		return ctx.Err()
	}
}

// Wait blocks until every submitted task has finished
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Close stops the workers after queued tasks finish. Submit must not be called afterwards.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.workers.Wait()
}

// Each calls fn for every item using at most size concurrent calls and
// returns the results in item order. Items not started before ctx ends
// keep the zero value of R.
func Each[T, R any](ctx context.Context, size int, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	p := New(min(size, len(items)))
	defer p.Close()

	for i, item := range items {
		err := p.Submit(ctx, func() {
			results[i] = fn(ctx, item)
		})
		if err != nil {
			break
		}
	}

	p.Wait()

	return results
}
