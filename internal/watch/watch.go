package watch

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const watchSubsystem = "Watch"

// WaitForMessage reads src until a line contains marker. Each read waits for
// whichever comes first of the next line, the remainder of deadline, or ctx
// being done.
//
// It returns nil on a match, ErrEndOfStream when src ends first,
// ErrWaitDurationExpired when the deadline runs out, *IOError when the
// underlying reader fails, or ctx.Err().
func WaitForMessage(ctx context.Context, src *LineSource, marker string, deadline time.Duration) error {
	start := time.Now()
	compared := 0

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	for {
		remaining := deadline - time.Since(start)
		if remaining <= 0 {
			logging.Error(watchSubsystem, ErrWaitDurationExpired, "Failed to find message in stream after comparing %d lines", compared)
			return ErrWaitDurationExpired
		}
		timer.Reset(remaining)

		select {
		case line, ok := <-src.lines:
			if !ok {
				if err := src.Err(); err != nil {
					logging.Error(watchSubsystem, err, "Log stream failed after comparing %d lines", compared)
					return &IOError{Err: err}
				}
				logging.Error(watchSubsystem, ErrEndOfStream, "Failed to find message in stream after comparing %d lines", compared)
				return ErrEndOfStream
			}
			compared++
			if strings.Contains(line, marker) {
				logging.Info(watchSubsystem, "Found message after comparing %d lines", compared)
				return nil
			}

		case <-timer.C:
			logging.Error(watchSubsystem, ErrWaitDurationExpired, "Failed to find message in stream after comparing %d lines", compared)
			return ErrWaitDurationExpired

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Tail yields every line of src until it ends. Breaking out of the loop
// closes src.
func Tail(src *LineSource) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range src.lines {
			if !yield(line) {
				src.Close()
				return
			}
		}
	}
}
