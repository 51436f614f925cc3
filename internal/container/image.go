package container

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/giantswarm/ephemera/internal/engine"
)

// Stream selects one of a container's output streams.
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
)

func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	default:
		return fmt.Sprintf("Stream(%d)", int(s))
	}
}

// ParseStream accepts "stdout" or "stderr".
func ParseStream(name string) (Stream, error) {
	switch name {
	case "stdout":
		return StreamStdout, nil
	case "stderr":
		return StreamStderr, nil
	default:
		return 0, fmt.Errorf("unknown stream %q", name)
	}
}

// WaitFor describes when a new container is ready. The zero value waits for
// nothing.
type WaitFor struct {
	// Message is matched as a case sensitive substring of a log line.
	Message string
	Stream  Stream
	// Deadline bounds the whole wait. Zero selects the client's configured
	// readiness timeout.
	Deadline time.Duration

	logMessage bool
}

// WaitForNothing treats the container as ready once it has been started.
func WaitForNothing() WaitFor {
	return WaitFor{}
}

// MessageOnStdout waits until a line on standard output contains message.
func MessageOnStdout(message string, deadline time.Duration) WaitFor {
	return WaitFor{Message: message, Stream: StreamStdout, Deadline: deadline, logMessage: true}
}

// MessageOnStderr waits until a line on standard error contains message.
func MessageOnStderr(message string, deadline time.Duration) WaitFor {
	return WaitFor{Message: message, Stream: StreamStderr, Deadline: deadline, logMessage: true}
}

// IsNothing reports whether no readiness check is needed.
func (w WaitFor) IsNothing() bool {
	return !w.logMessage
}

func (w WaitFor) String() string {
	if w.IsNothing() {
		return "nothing"
	}
	return fmt.Sprintf("message %q on %s within %s", w.Message, w.Stream, w.Deadline)
}

// Image describes how to start a container. Image values are immutable:
// every With method returns a modified copy.
type Image struct {
	descriptor string
	env        map[string]string
	args       []string
	mounts     []map[string]string
	network    string
	waitFor    WaitFor
}

// NewImage returns an image for descriptor, for example "redis:6-alpine",
// that waits for nothing.
func NewImage(descriptor string) Image {
	return Image{descriptor: descriptor}
}

func (i Image) clone() Image {
	out := i
	out.env = maps.Clone(i.env)
	out.args = slices.Clone(i.args)
	if i.mounts != nil {
		out.mounts = make([]map[string]string, len(i.mounts))
		for n, m := range i.mounts {
			out.mounts[n] = maps.Clone(m)
		}
	}
	return out
}

// WithEnvVar sets an environment variable, replacing an earlier value for
// the same name.
func (i Image) WithEnvVar(name, value string) Image {
	out := i.clone()
	if out.env == nil {
		out.env = make(map[string]string)
	}
	out.env[name] = value
	return out
}

// WithArgs appends arguments passed to the container after the descriptor.
func (i Image) WithArgs(args ...string) Image {
	out := i.clone()
	out.args = append(out.args, args...)
	return out
}

// WithMount adds a mount given as --mount options, for example
// {"type": "bind", "source": "/data", "target": "/var/lib/data"}.
func (i Image) WithMount(options map[string]string) Image {
	out := i.clone()
	out.mounts = append(out.mounts, maps.Clone(options))
	return out
}

// WithNetwork connects the container to an existing network.
func (i Image) WithNetwork(name string) Image {
	out := i.clone()
	out.network = name
	return out
}

func (i Image) WithWaitFor(w WaitFor) Image {
	out := i.clone()
	out.waitFor = w
	return out
}

func (i Image) Descriptor() string { return i.descriptor }

// EnvVars returns a copy of the environment variables.
func (i Image) EnvVars() map[string]string { return maps.Clone(i.env) }

func (i Image) Args() []string { return slices.Clone(i.args) }

// Mounts returns a copy of the mount specifications.
func (i Image) Mounts() []map[string]string { return i.clone().mounts }

func (i Image) Network() string { return i.network }

func (i Image) WaitFor() WaitFor { return i.waitFor }

func (i Image) runOptions() engine.RunOptions {
	c := i.clone()
	return engine.RunOptions{
		Descriptor: c.descriptor,
		Env:        c.env,
		Mounts:     c.mounts,
		Network:    c.network,
		Args:       c.args,
	}
}
