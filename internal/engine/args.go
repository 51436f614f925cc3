package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Verb is an engine CLI subcommand.
type Verb string

const (
	VerbRun     Verb = "run"
	VerbLogs    Verb = "logs"
	VerbInspect Verb = "inspect"
	VerbRm      Verb = "rm"
	VerbStop    Verb = "stop"
)

// RunOptions holds everything rendered into the run verb's arguments.
type RunOptions struct {
	Descriptor string
	Env        map[string]string
	Mounts     []map[string]string
	Network    string
	Args       []string
}

// RunArgs renders
//
//	-e K=V ... [--mount k=v,... ...] [--network NAME] -d -P <descriptor> [args...]
//
// Containers always run detached with every exposed port published.
// Environment variables and mount options are sorted by key so the argument
// list is deterministic.
func RunArgs(opts RunOptions) []string {
	var args []string

	for _, k := range sortedKeys(opts.Env) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	for _, m := range opts.Mounts {
		args = append(args, "--mount", FormatMount(m))
	}

	if opts.Network != "" {
		args = append(args, "--network", opts.Network)
	}

	args = append(args, "-d", "-P", opts.Descriptor)
	return append(args, opts.Args...)
}

// FormatMount renders a mount specification as the comma separated key=value
// list accepted by --mount.
func FormatMount(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, m[k]))
	}
	return strings.Join(parts, ",")
}

// LogsArgs follows both output streams of a container.
func LogsArgs(containerID string) []string {
	return []string{"-f", containerID}
}

func InspectArgs(containerID string) []string {
	return []string{containerID}
}

// RmArgs force-removes a container together with its anonymous volumes.
func RmArgs(containerID string) []string {
	return []string{"-f", "-v", containerID}
}

func StopArgs(containerID string) []string {
	return []string{containerID}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
