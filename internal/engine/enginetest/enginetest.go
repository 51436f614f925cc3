// Package enginetest provides a scripted fake container engine for tests.
//
// The fake re-executes the running test binary, so every test package that
// uses it must declare
//
//	func TestHelperProcess(t *testing.T) { enginetest.HelperProcess() }
//
// HelperProcess returns immediately in the normal test run and only acts in
// the child process started by the fake.
package enginetest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	envHelper   = "EPHEMERA_FAKE_ENGINE"
	envCalls    = "EPHEMERA_FAKE_CALLS"
	envID       = "EPHEMERA_FAKE_ID"
	envStdout   = "EPHEMERA_FAKE_STDOUT"
	envStderr   = "EPHEMERA_FAKE_STDERR"
	envInterval = "EPHEMERA_FAKE_INTERVAL"
	envFollow   = "EPHEMERA_FAKE_FOLLOW"
	envInspect  = "EPHEMERA_FAKE_INSPECT"
	envFail     = "EPHEMERA_FAKE_FAIL"

	// separates lines inside a single environment value
	recordSep = "\x1e"
	// separates arguments of one recorded call
	unitSep = "\x1f"
)

// DefaultID is the identifier the fake prints for run unless overridden.
const DefaultID = "4f2a9c1e7b3d8a6f0c5e2d1b9a7f3e6c4d8b2a1f0e9d7c6b5a4f3e2d1c0b9a8f"

// Engine describes how the fake behaves. Fields may be changed between
// invocations; each spawned process sees the values current at spawn time.
type Engine struct {
	// ID is printed by run. An empty ID makes run print nothing.
	ID string
	// Stdout and Stderr are the lines logs prints on the respective stream.
	Stdout []string
	Stderr []string
	// Interval is the pause before each log line.
	Interval time.Duration
	// Follow keeps logs running after the last line until it is killed.
	Follow bool
	// Inspect is printed by inspect.
	Inspect string
	// Fail makes the named verb exit with status 1.
	Fail string

	calls string
}

// New returns a fake engine recording its invocations in a temporary
// directory owned by t.
func New(t testing.TB) *Engine {
	t.Helper()
	return &Engine{
		ID:    DefaultID,
		calls: filepath.Join(t.TempDir(), "calls"),
	}
}

// CommandFunc returns a process factory with the signature of
// exec.CommandContext that starts the fake instead of the named binary.
func (e *Engine) CommandFunc() func(ctx context.Context, name string, arg ...string) *exec.Cmd {
	return func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		cs := []string{"-test.run=^TestHelperProcess$", "--", name}
		cs = append(cs, arg...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			envHelper + "=1",
			envCalls + "=" + e.calls,
			envID + "=" + e.ID,
			envStdout + "=" + strings.Join(e.Stdout, recordSep),
			envStderr + "=" + strings.Join(e.Stderr, recordSep),
			envInterval + "=" + e.Interval.String(),
			envFollow + "=" + fmt.Sprint(e.Follow),
			envInspect + "=" + e.Inspect,
			envFail + "=" + e.Fail,
			// race-built helpers otherwise linger a second at exit
			"GORACE=atexit_sleep_ms=0",
		}
		return cmd
	}
}

// Calls returns the argument lists (verb first, binary excluded) of every
// invocation so far, in order.
func (e *Engine) Calls() [][]string {
	f, err := os.Open(e.calls)
	if err != nil {
		return nil
	}
	defer f.Close()

	var calls [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		calls = append(calls, strings.Split(scanner.Text(), unitSep))
	}
	return calls
}

// CallsFor returns the recorded calls of one verb.
func (e *Engine) CallsFor(verb string) [][]string {
	var out [][]string
	for _, c := range e.Calls() {
		if len(c) > 0 && c[0] == verb {
			out = append(out, c)
		}
	}
	return out
}

// Verbs returns the verb of every recorded call, in order.
func (e *Engine) Verbs() []string {
	var verbs []string
	for _, c := range e.Calls() {
		if len(c) > 0 {
			verbs = append(verbs, c[0])
		}
	}
	return verbs
}

// HelperProcess is the body of the fake engine.
func HelperProcess() {
	if os.Getenv(envHelper) != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	// drop the binary name
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "No engine subcommand\n")
		os.Exit(2)
	}
	args = args[1:]
	record(args)

	verb := args[0]
	if verb == os.Getenv(envFail) {
		fmt.Fprintf(os.Stderr, "Error response from daemon: %s failed\n", verb)
		os.Exit(1)
	}

	switch verb {
	case "run":
		if id := os.Getenv(envID); id != "" {
			fmt.Println(id)
		}
		os.Exit(0)

	case "logs":
		interval, _ := time.ParseDuration(os.Getenv(envInterval))
		done := make(chan struct{}, 2)
		go emit(os.Stdout, split(os.Getenv(envStdout)), interval, done)
		go emit(os.Stderr, split(os.Getenv(envStderr)), interval, done)
		<-done
		<-done
		if os.Getenv(envFollow) == "true" {
			time.Sleep(time.Minute)
		}
		os.Exit(0)

	case "inspect":
		fmt.Print(os.Getenv(envInspect))
		os.Exit(0)

	case "stop", "rm":
		fmt.Println(args[len(args)-1])
		os.Exit(0)
	}

	fmt.Fprintf(os.Stderr, "Unknown command: %v\n", args)
	os.Exit(1)
}

func emit(f *os.File, lines []string, interval time.Duration, done chan<- struct{}) {
	for _, line := range lines {
		if interval > 0 {
			time.Sleep(interval)
		}
		fmt.Fprintln(f, line)
	}
	done <- struct{}{}
}

func split(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, recordSep)
}

func record(args []string) {
	path := os.Getenv(envCalls)
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, strings.Join(args, unitSep))
}
