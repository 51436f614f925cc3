package engine

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const engineSubsystem = "Engine"

// CommandFunc creates the command for an engine invocation. It has the
// signature of exec.CommandContext.
type CommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

// execCommandContext is the default process factory.
var execCommandContext CommandFunc = exec.CommandContext

// Option configures a Launcher.
type Option func(*Launcher)

// WithCommandFunc replaces the process factory, used by tests to substitute a
// fake engine.
func WithCommandFunc(fn CommandFunc) Option {
	return func(l *Launcher) {
		if fn != nil {
			l.command = fn
		}
	}
}

// Launcher starts engine CLI processes.
type Launcher struct {
	binary  string
	command CommandFunc
}

// New creates a launcher for the given engine binary. An empty binary selects
// DefaultBinary.
func New(binary string, opts ...Option) *Launcher {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	l := &Launcher{
		binary:  binary,
		command: execCommandContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Binary returns the engine binary name or path.
func (l *Launcher) Binary() string {
	return l.binary
}

func (l *Launcher) cmd(ctx context.Context, verb Verb, args []string) *exec.Cmd {
	full := append([]string{string(verb)}, args...)
	logging.Debug(engineSubsystem, "Executing command: %s %s", l.binary, strings.Join(full, " "))
	return l.command(ctx, l.binary, full...)
}

// Start launches verb with standard output piped. For the logs verb standard
// error is piped too; for every other verb it is captured for diagnostics.
// Standard input is not connected.
//
// The process is bound to ctx: cancelling ctx kills it.
func (l *Launcher) Start(ctx context.Context, verb Verb, args ...string) (*Process, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := l.cmd(ctx, verb, args)
	p := &Process{verb: verb, cmd: cmd, cancel: cancel}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, &LaunchError{Binary: l.binary, Verb: verb, Err: err}
	}
	p.stdout = stdout

	if verb == VerbLogs {
		stderr, err := cmd.StderrPipe()
		if err != nil {
			cancel()
			return nil, &LaunchError{Binary: l.binary, Verb: verb, Err: err}
		}
		p.stderr = stderr
	} else {
		cmd.Stderr = &p.diag
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &LaunchError{Binary: l.binary, Verb: verb, Err: err}
	}

	return p, nil
}

// Output runs verb to completion and returns its standard output.
func (l *Launcher) Output(ctx context.Context, verb Verb, args ...string) ([]byte, error) {
	cmd := l.cmd(ctx, verb, args)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Binary: l.binary, Verb: verb, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		return stdout.Bytes(), &ExitError{Verb: verb, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.Bytes(), nil
}

// Process is a running engine invocation.
type Process struct {
	verb   Verb
	cmd    *exec.Cmd
	cancel context.CancelFunc
	stdout io.Reader
	stderr io.Reader
	diag   bytes.Buffer

	waitOnce sync.Once
	waitErr  error
}

// Stdout returns the piped standard output stream.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stderr returns the piped standard error stream, or nil when the verb does
// not pipe it.
func (p *Process) Stderr() io.Reader {
	return p.stderr
}

// Verb returns the verb this process runs.
func (p *Process) Verb() Verb {
	return p.verb
}

// Wait waits for the process to exit and releases its resources. It closes
// the pipes, so it must only be called once reading has finished (or from
// Kill, when the remaining output is of no interest). Wait is safe to call
// more than once; later calls return the first result.
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.cmd.Wait()
		p.cancel()
		if p.waitErr != nil && p.diag.Len() > 0 {
			p.waitErr = &ExitError{Verb: p.verb, Stderr: strings.TrimSpace(p.diag.String()), Err: p.waitErr}
		}
	})
	return p.waitErr
}

// Kill terminates the process and reaps it.
func (p *Process) Kill() {
	p.cancel()
	_ = p.Wait()
}
