package bridge

import "context"

// Future is the pending result of an operation started with Async.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Async starts fn on its own goroutine and returns immediately.
func Async[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if p := recover(); p != nil {
				f.err = &PanicError{Value: p}
			}
		}()
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Done is closed once the operation finished.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await waits for the result, or for ctx to be done. Giving up on the wait
// does not cancel the operation; cancel the context passed to Async for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
