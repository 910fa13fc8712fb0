// Package loader memoizes one-shot asynchronous loads.
package loader

import (
	"context"
	"sync"
)

// Memo runs its load function at most once per process. The first caller
// triggers it; concurrent callers share the in-flight load, and the result
// (value or error) is cached for the lifetime of the Memo.
type Memo[T any] struct {
	load func(context.Context) (T, error)

	once sync.Once
	done chan struct{}
	val  T
	err  error
}

func New[T any](load func(context.Context) (T, error)) *Memo[T] {
	return &Memo[T]{load: load, done: make(chan struct{})}
}

// Start triggers the load without waiting. Safe to call repeatedly.
func (m *Memo[T]) Start() {
	m.once.Do(func() {
		go func() {
			defer close(m.done)
			// The load outlives any single caller, so it never sees a caller's context.
			m.val, m.err = m.load(context.Background())
		}()
	})
}

// Get starts the load if needed and waits for it or for ctx.
func (m *Memo[T]) Get(ctx context.Context) (T, error) {
	m.Start()
	select {
	case <-m.done:
		return m.val, m.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Poll reports the result without blocking. ready is false while the load
// is pending or has not been started.
func (m *Memo[T]) Poll() (val T, ready bool, err error) {
	select {
	case <-m.done:
		return m.val, true, m.err
	default:
		var zero T
		return zero, false, nil
	}
}
