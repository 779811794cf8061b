package source

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Result is the settled outcome of one concurrent task.
type Result[T any] struct {
	Value T
	Err   error
}

// PanicError wraps a panic recovered from a settled task.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// SettleAll runs fn for every index in [0, n) concurrently and waits for all of
// them. A task's error or panic is captured in its Result and never cancels the
// other tasks. Results are returned in index order regardless of completion
// order. limit bounds concurrency; limit <= 0 means unbounded.
func SettleAll[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	results := make([]Result[T], n)

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					results[i] = Result[T]{Err: &PanicError{Value: p, Stack: debug.Stack()}}
				}
			}()
			v, err := fn(ctx, i)
			results[i] = Result[T]{Value: v, Err: err}
			return nil // never fail the group
		})
	}

	_ = g.Wait()
	return results
}
