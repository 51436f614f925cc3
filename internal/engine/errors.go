package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyIdentifier is returned when the run verb did not print a container
// identifier.
var ErrEmptyIdentifier = errors.New("engine returned no container identifier")

// LaunchError reports that the engine binary could not be started at all.
type LaunchError struct {
	Binary string
	Verb   Verb
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s %s: %v", e.Binary, e.Verb, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError reports that the engine was started but exited unsuccessfully.
type ExitError struct {
	Verb   Verb
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Verb, e.Err)
	}
	return fmt.Sprintf("%s failed: %v: %s", e.Verb, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// IsLaunchError reports whether err (or anything it wraps) is a *LaunchError.
func IsLaunchError(err error) bool {
	var lerr *LaunchError
	return errors.As(err, &lerr)
}
