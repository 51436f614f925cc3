package container

import (
	"context"

	"github.com/giantswarm/ephemera/internal/bridge"
	"github.com/giantswarm/ephemera/internal/ports"
)

// Blocking exposes the client's operations without context arguments. Every
// call runs on the client's executor goroutine, one at a time, so it must
// not be used from inside another Blocking call.
type Blocking struct {
	client *Client
}

// Blocking returns the blocking facade of c.
func (c *Client) Blocking() *Blocking {
	return &Blocking{client: c}
}

func (b *Blocking) Create(img Image) (*Container, error) {
	return bridge.Call(b.client.executor, func(ctx context.Context) (*Container, error) {
		return b.client.Create(ctx, img)
	})
}

type hostPort struct {
	port uint16
	ok   bool
}

func (b *Blocking) HostPort(c *Container, internal uint16) (uint16, bool, error) {
	r, err := bridge.Call(b.client.executor, func(ctx context.Context) (hostPort, error) {
		port, ok, err := c.HostPort(ctx, internal)
		return hostPort{port: port, ok: ok}, err
	})
	return r.port, r.ok, err
}

func (b *Blocking) Ports(c *Container) (*ports.Table, error) {
	return bridge.Call(b.client.executor, c.Ports)
}

// PrintStdout occupies the executor until the stream ends.
func (b *Blocking) PrintStdout(c *Container) error {
	_, err := bridge.Call(b.client.executor, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.PrintStdout(ctx)
	})
	return err
}

// PrintStderr occupies the executor until the stream ends.
func (b *Blocking) PrintStderr(c *Container) error {
	_, err := bridge.Call(b.client.executor, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.PrintStderr(ctx)
	})
	return err
}

// Close tears c down on the executor. If the executor is already closed the
// teardown runs on the calling goroutine.
func (b *Blocking) Close(c *Container) {
	_, err := bridge.Call(b.client.executor, func(ctx context.Context) (struct{}, error) {
		c.Close(ctx)
		return struct{}{}, nil
	})
	if err != nil {
		c.Close(context.Background())
	}
}
