package bridge

import (
	"github.com/google/uuid"

	"github.com/giantswarm/ephemera/pkg/logging"
)

// Task is a detached background worker.
type Task struct {
	ID   string
	Name string

	done chan struct{}
	err  error
}

// Detach runs fn on a new goroutine. Nobody has to wait for it; a failure is
// logged with the task's name and ID.
func Detach(name string, fn func() error) *Task {
	t := &Task{
		ID:   uuid.NewString(),
		Name: name,
		done: make(chan struct{}),
	}
	logging.Debug(bridgeSubsystem, "Starting background task %s (%s)", t.Name, t.ID)

	go func() {
		defer close(t.done)
		defer func() {
			if p := recover(); p != nil {
				t.err = &PanicError{Value: p}
				logging.Error(bridgeSubsystem, t.err, "Background task %s (%s) panicked", t.Name, t.ID)
			}
		}()

		t.err = fn()
		if t.err != nil {
			logging.Error(bridgeSubsystem, t.err, "Background task %s (%s) failed", t.Name, t.ID)
			return
		}
		logging.Debug(bridgeSubsystem, "Background task %s (%s) finished", t.Name, t.ID)
	}()

	return t
}

// Finished returns a task that has already completed without error.
func Finished(name string) *Task {
	t := &Task{ID: uuid.NewString(), Name: name, done: make(chan struct{})}
	close(t.done)
	return t
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finished and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Err returns the task's error, or nil while it is still running.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
