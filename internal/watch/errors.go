package watch

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream means the stream closed before the marker was seen,
	// which almost always means the container exited early.
	ErrEndOfStream = errors.New("end of stream reached before message was found")

	// ErrWaitDurationExpired means the marker did not appear within the
	// deadline.
	ErrWaitDurationExpired = errors.New("wait duration expired")
)

// IOError wraps a read failure of the underlying transport.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading log stream: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// IsReadinessError reports whether err is one of the outcomes of a failed
// readiness wait.
func IsReadinessError(err error) bool {
	var ioErr *IOError
	return errors.Is(err, ErrEndOfStream) ||
		errors.Is(err, ErrWaitDurationExpired) ||
		errors.As(err, &ioErr)
}
