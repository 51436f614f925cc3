package watch

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// LineSource delivers the lines of a reader one at a time. Lines are not
// length limited; the trailing newline (and a preceding carriage return) is
// stripped.
type LineSource struct {
	lines chan string
	stop  chan struct{}
	once  sync.Once
	// err is written before lines is closed and read only after that.
	err error
}

// Lines starts reading r in the background.
func Lines(r io.Reader) *LineSource {
	s := &LineSource{
		lines: make(chan string),
		stop:  make(chan struct{}),
	}
	go s.read(r)
	return s
}

func (s *LineSource) read(r io.Reader) {
	defer close(s.lines)

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			select {
			case s.lines <- strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"):
			case <-s.stop:
				return
			}
		}
		if err != nil {
			// A pipe closed under the reader by process teardown is an end of
			// stream, not a failure.
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				s.err = err
			}
			return
		}
	}
}

// Close stops delivering lines. The background reader exits at its next
// delivery attempt, or when the underlying reader fails or ends.
func (s *LineSource) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Err returns the transport error that ended the stream, if any. It is only
// meaningful after the stream has been drained.
func (s *LineSource) Err() error {
	return s.err
}
