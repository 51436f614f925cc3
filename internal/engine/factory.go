package engine

import (
	"fmt"
	"strings"
)

// RuntimeType defines the type of container engine CLI.
type RuntimeType string

const (
	RuntimeTypeDocker RuntimeType = "docker"
	RuntimeTypePodman RuntimeType = "podman"
)

// DefaultBinary is the engine binary used when none is configured.
const DefaultBinary = string(RuntimeTypeDocker)

// NewForRuntime creates a launcher for a known runtime type. An empty runtime
// selects docker.
func NewForRuntime(runtimeType string, opts ...Option) (*Launcher, error) {
	rt := RuntimeType(strings.ToLower(strings.TrimSpace(runtimeType)))

	switch rt {
	case RuntimeTypeDocker, "":
		return New(string(RuntimeTypeDocker), opts...), nil
	case RuntimeTypePodman:
		// podman accepts the docker argument grammar for every verb used here
		return New(string(RuntimeTypePodman), opts...), nil
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", runtimeType)
	}
}
