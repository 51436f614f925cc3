package container

import (
	"errors"
	"fmt"
)

// ReadinessError reports that a started container never became ready. The
// container has already been torn down when this error is returned.
type ReadinessError struct {
	ID  string
	Err error
}

func (e *ReadinessError) Error() string {
	return fmt.Sprintf("container %s did not become ready: %v", shortID(e.ID), e.Err)
}

func (e *ReadinessError) Unwrap() error {
	return e.Err
}

// IsReadinessError reports whether err (or anything it wraps) is a
// *ReadinessError.
func IsReadinessError(err error) bool {
	var rerr *ReadinessError
	return errors.As(err, &rerr)
}
