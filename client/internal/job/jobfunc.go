// Package job adapts closures to the shard executor's Job interface.
package job

import (
	"context"
	"errors"
	"fmt"
)

// ErrNilJobFunc is returned when a JobFunc is nil.
var ErrNilJobFunc = errors.New("nil JobFunc")

// jobFunc lets us pass plain closures to the shard executor.
type jobFunc func(context.Context) error

func (f jobFunc) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("jobfunc: %w", ErrNilJobFunc)
	}
	return f(ctx)
}

// New creates a new job function from a closure.
func New(fn func(context.Context) error) jobFunc {
	return jobFunc(fn)
}

// Detached wraps fn so its error is reported to sink instead of the
// executor. Use it for calls that must not be retried: the executor only
// ever sees success.
func Detached(fn func(context.Context) error, sink func(error)) jobFunc {
	return jobFunc(func(ctx context.Context) error {
		err := fn(ctx)
		if sink != nil {
			sink(err)
		}
		return nil
	})
}
