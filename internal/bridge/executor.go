package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const bridgeSubsystem = "Bridge"

// ErrExecutorClosed is returned by Call after Close.
var ErrExecutorClosed = errors.New("executor is closed")

// PanicError carries a panic recovered from an operation.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}

// Executor runs submitted operations one at a time on its own goroutine.
type Executor struct {
	name   string
	tasks  chan func(context.Context)
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// NewExecutor starts an executor. name only appears in logs.
func NewExecutor(name string) *Executor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		name:   name,
		tasks:  make(chan func(context.Context)),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	go e.loop()
	return e
}

func (e *Executor) loop() {
	defer close(e.done)
	logging.Debug(bridgeSubsystem, "Executor %s started", e.name)
	for fn := range e.tasks {
		fn(e.ctx)
	}
	logging.Debug(bridgeSubsystem, "Executor %s stopped", e.name)
}

func (e *Executor) submit(fn func(context.Context)) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrExecutorClosed
	}
	e.tasks <- fn
	return nil
}

// Close waits for queued operations to finish and stops the executor. It is
// safe to call more than once.
func (e *Executor) Close() {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.tasks)
	}
	e.mu.Unlock()

	<-e.done
	e.cancel()
}

// Call runs fn on e and blocks until it returns. A panic in fn is returned as
// *PanicError and leaves the executor usable.
func Call[T any](e *Executor, fn func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)

	err := e.submit(func(ctx context.Context) {
		var r result
		defer func() {
			if p := recover(); p != nil {
				r.err = &PanicError{Value: p}
			}
			ch <- r
		}()
		r.val, r.err = fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	r := <-ch
	return r.val, r.err
}
