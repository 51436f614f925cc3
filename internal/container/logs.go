package container

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/ephemera/internal/bridge"
	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/internal/watch"
	"github.com/giantswarm/ephemera/pkg/logging"
)

// LogStream follows one output stream of a container.
type LogStream struct {
	stream Stream
	proc   *engine.Process
	src    *watch.LineSource
}

// Lines yields every line until the stream ends or the consumer stops. It
// can be ranged over once.
func (s *LogStream) Lines() iter.Seq[string] {
	return watch.Tail(s.src)
}

// Err returns the read error that ended the stream, if any.
func (s *LogStream) Err() error {
	if err := s.src.Err(); err != nil {
		return &watch.IOError{Err: err}
	}
	return nil
}

// Close kills the logs process.
func (s *LogStream) Close() {
	s.src.Close()
	s.proc.Kill()
}

// Logs starts following stream. The first access to a container's logs
// waits until the log grace period after its start has passed. The caller
// must Close the stream; cancelling ctx also ends it.
func (c *Container) Logs(ctx context.Context, stream Stream) (*LogStream, error) {
	if err := c.awaitLogGrace(ctx); err != nil {
		return nil, err
	}

	proc, err := c.client.launcher.Start(ctx, engine.VerbLogs, engine.LogsArgs(c.id)...)
	if err != nil {
		return nil, err
	}

	followed, other := proc.Stdout(), proc.Stderr()
	if stream == StreamStderr {
		followed, other = other, followed
	}
	go func() { _, _ = io.Copy(io.Discard, other) }()

	return &LogStream{
		stream: stream,
		proc:   proc,
		src:    watch.Lines(followed),
	}, nil
}

// StdoutLines follows standard output. The logs process is killed when the
// returned sequence finishes, so it has to be ranged over (or ctx
// cancelled).
func (c *Container) StdoutLines(ctx context.Context) (iter.Seq[string], error) {
	return c.lines(ctx, StreamStdout)
}

// StderrLines follows standard error, see StdoutLines.
func (c *Container) StderrLines(ctx context.Context) (iter.Seq[string], error) {
	return c.lines(ctx, StreamStderr)
}

func (c *Container) lines(ctx context.Context, stream Stream) (iter.Seq[string], error) {
	s, err := c.Logs(ctx, stream)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		defer s.Close()
		for line := range s.Lines() {
			if !yield(line) {
				return
			}
		}
	}, nil
}

// PrintStdout logs every line of standard output at info level until the
// stream ends.
func (c *Container) PrintStdout(ctx context.Context) error {
	return c.print(ctx, StreamStdout)
}

// PrintStderr logs every line of standard error at error level until the
// stream ends.
func (c *Container) PrintStderr(ctx context.Context) error {
	return c.print(ctx, StreamStderr)
}

func (c *Container) print(ctx context.Context, stream Stream) error {
	s, err := c.Logs(ctx, stream)
	if err != nil {
		return err
	}
	defer s.Close()

	short := shortID(c.id)
	for line := range s.Lines() {
		if stream == StreamStderr {
			logging.Error(containerSubsystem, nil, "stderr:%s > %s", short, line)
		} else {
			logging.Info(containerSubsystem, "stdout:%s > %s", short, line)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Err()
}

// RunBackgroundLogs prints the selected streams on a detached goroutine and
// returns at once. The task ends when every selected stream has ended;
// nothing needs to wait for it.
func (c *Container) RunBackgroundLogs(stdout, stderr bool) *bridge.Task {
	name := fmt.Sprintf("logs:%s", shortID(c.id))
	if !stdout && !stderr {
		logging.Info(containerSubsystem, "No log stream selected for container %s, nothing to print", shortID(c.id))
		return bridge.Finished(name)
	}

	return bridge.Detach(name, func() error {
		var g errgroup.Group
		if stdout {
			g.Go(func() error { return c.PrintStdout(context.Background()) })
		}
		if stderr {
			g.Go(func() error { return c.PrintStderr(context.Background()) })
		}
		return g.Wait()
	})
}

// awaitLogGrace waits until the log grace period after the container's
// start has passed. Engines may drop the first lines for followers that
// attach right after start.
func (c *Container) awaitLogGrace(ctx context.Context) error {
	wait := time.Until(c.createdAt.Add(c.client.cfg.LogGracePeriod))
	if wait <= 0 {
		return nil
	}

	logging.Debug(containerSubsystem, "Waiting %s before following logs of container %s", wait, shortID(c.id))
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
