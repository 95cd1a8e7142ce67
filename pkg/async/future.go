package async

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
	ErrTimeout = errors.New("async: operation timed out")
)

// Future represents the result of an asynchronous computation.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Async executes fn in a new goroutine and returns a Future for its result.
// If ctx is already cancelled the function never runs and the future resolves
// with the context's error.
func Async[A, T any](ctx context.Context, arg A, fn func(context.Context, A) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx, arg)
	}()

	return f
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout blocks up to timeout for the computation to complete.
// Returns ErrTimeout if the deadline passes first; the computation itself
// keeps running.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports completion without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll awaits every future and returns the results in argument order.
// Errors from individual futures are joined; results of failed futures are
// their zero values.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var errs []error

	for i, f := range futures {
		v, err := f.Await()
		results[i] = v
		if err != nil {
			errs = append(errs, err)
		}
	}

	return results, errors.Join(errs...)
}
