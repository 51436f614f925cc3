package container_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/ephemera/internal/container"
	"github.com/giantswarm/ephemera/internal/engine/enginetest"
)

func TestBlocking(t *testing.T) {
	out := captureLogs(t)
	fake := enginetest.New(t)
	fake.Stdout = []string{"Ready to accept connections"}
	fake.Stderr = []string{"warning"}
	fake.Inspect = inspectScenarioB
	client := newClient(t, fake)
	b := client.Blocking()

	ctr, err := b.Create(container.NewImage("redis").
		WithWaitFor(container.MessageOnStdout("Ready to accept connections", 10*time.Second)))
	require.NoError(t, err)

	host, ok, err := b.HostPort(ctr, 5432)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint16(49155), host)

	table, err := b.Ports(ctr)
	require.NoError(t, err)
	assert.Equal(t, []uint16{5432}, table.Internal())

	require.NoError(t, b.PrintStdout(ctr))
	require.NoError(t, b.PrintStderr(ctr))
	assert.Contains(t, out.String(), "stderr:4f2a9c > warning")

	b.Close(ctr)
	b.Close(ctr)
	assert.Len(t, fake.CallsFor("rm"), 1)
}

func TestBlocking_CloseAfterClientClosed(t *testing.T) {
	fake := enginetest.New(t)
	client := newClient(t, fake)
	b := client.Blocking()

	ctr, err := b.Create(container.NewImage("redis"))
	require.NoError(t, err)

	client.Close()
	b.Close(ctr)
	assert.Len(t, fake.CallsFor("rm"), 1)

	_, err = b.Create(container.NewImage("redis"))
	assert.Error(t, err)
}
