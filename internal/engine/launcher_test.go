package engine_test

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/internal/engine/enginetest"
)

func TestHelperProcess(t *testing.T) { enginetest.HelperProcess() }

func TestLauncher_Defaults(t *testing.T) {
	assert.Equal(t, "docker", engine.New("").Binary())
	assert.Equal(t, "podman", engine.New("podman").Binary())
}

func TestNewForRuntime(t *testing.T) {
	tests := []struct {
		name        string
		runtime     string
		wantBinary  string
		expectError bool
	}{
		{name: "empty defaults to docker", runtime: "", wantBinary: "docker"},
		{name: "docker", runtime: "Docker", wantBinary: "docker"},
		{name: "podman", runtime: "podman", wantBinary: "podman"},
		{name: "unknown", runtime: "rkt", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := engine.NewForRuntime(tt.runtime)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBinary, l.Binary())
		})
	}
}

func TestLauncher_StartRun(t *testing.T) {
	fake := enginetest.New(t)
	l := engine.New("docker", engine.WithCommandFunc(fake.CommandFunc()))

	p, err := l.Start(context.Background(), engine.VerbRun, "-d", "-P", "redis:7")
	require.NoError(t, err)
	assert.Nil(t, p.Stderr(), "run does not pipe stderr")

	line, err := bufio.NewReader(p.Stdout()).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, enginetest.DefaultID+"\n", line)
	require.NoError(t, p.Wait())

	assert.Equal(t, [][]string{{"run", "-d", "-P", "redis:7"}}, fake.Calls())
}

func TestLauncher_StartLogsPipesBothStreams(t *testing.T) {
	fake := enginetest.New(t)
	fake.Stdout = []string{"out 1", "out 2"}
	fake.Stderr = []string{"err 1"}
	l := engine.New("docker", engine.WithCommandFunc(fake.CommandFunc()))

	p, err := l.Start(context.Background(), engine.VerbLogs, engine.LogsArgs("abc")...)
	require.NoError(t, err)
	require.NotNil(t, p.Stderr())

	stdout, err := io.ReadAll(p.Stdout())
	require.NoError(t, err)
	stderr, err := io.ReadAll(p.Stderr())
	require.NoError(t, err)
	require.NoError(t, p.Wait())

	assert.Equal(t, "out 1\nout 2\n", string(stdout))
	assert.Equal(t, "err 1\n", string(stderr))
	assert.Equal(t, engine.VerbLogs, p.Verb())
}

func TestLauncher_KillStopsFollowingProcess(t *testing.T) {
	fake := enginetest.New(t)
	fake.Stdout = []string{"hello"}
	fake.Follow = true
	l := engine.New("docker", engine.WithCommandFunc(fake.CommandFunc()))

	p, err := l.Start(context.Background(), engine.VerbLogs, engine.LogsArgs("abc")...)
	require.NoError(t, err)

	line, err := bufio.NewReader(p.Stdout()).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hello\n", line)

	p.Kill()
	assert.Error(t, p.Wait(), "a killed process reports its signal")
	// idempotent
	p.Kill()
}

func TestLauncher_LaunchError(t *testing.T) {
	missing := func(ctx context.Context, name string, arg ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/ephemera-engine", arg...)
	}
	l := engine.New("docker", engine.WithCommandFunc(missing))

	_, err := l.Start(context.Background(), engine.VerbRun, "alpine")
	require.Error(t, err)

	var lerr *engine.LaunchError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, engine.VerbRun, lerr.Verb)
	assert.Equal(t, "docker", lerr.Binary)
	assert.True(t, engine.IsLaunchError(err))

	_, err = l.Output(context.Background(), engine.VerbInspect, "abc")
	assert.True(t, engine.IsLaunchError(err))
}

func TestLauncher_Output(t *testing.T) {
	fake := enginetest.New(t)
	fake.Inspect = `[{"Id":"abc"}]`
	l := engine.New("docker", engine.WithCommandFunc(fake.CommandFunc()))

	out, err := l.Output(context.Background(), engine.VerbInspect, engine.InspectArgs("abc")...)
	require.NoError(t, err)
	assert.Equal(t, `[{"Id":"abc"}]`, string(out))
}

func TestLauncher_OutputExitError(t *testing.T) {
	fake := enginetest.New(t)
	fake.Fail = "stop"
	l := engine.New("docker", engine.WithCommandFunc(fake.CommandFunc()))

	_, err := l.Output(context.Background(), engine.VerbStop, engine.StopArgs("abc")...)
	require.Error(t, err)

	var xerr *engine.ExitError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, engine.VerbStop, xerr.Verb)
	assert.Contains(t, xerr.Stderr, "stop failed")
	assert.False(t, engine.IsLaunchError(err))
}
