package container

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/internal/ports"
	"github.com/giantswarm/ephemera/internal/watch"
	"github.com/giantswarm/ephemera/pkg/logging"
)

// State is the lifecycle state of a container.
type State int

const (
	StateCreated State = iota
	StateWaitingReady
	StateReady
	StateStopped
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateWaitingReady:
		return "waiting-ready"
	case StateReady:
		return "ready"
	case StateStopped:
		return "stopped"
	case StateRemoved:
		return "removed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Container is a started container. Handles are only returned once the
// container is ready and must not be copied.
type Container struct {
	id        string
	image     Image
	createdAt time.Time
	client    *Client

	mu    sync.RWMutex
	state State

	closeOnce sync.Once
}

func newContainer(c *Client, id string, img Image) *Container {
	createdAt, ok := c.registry.StartedAt(id)
	if !ok {
		createdAt = time.Now()
	}
	return &Container{
		id:        id,
		image:     img,
		createdAt: createdAt,
		client:    c,
		state:     StateCreated,
	}
}

// ID returns the engine's container identifier.
func (c *Container) ID() string { return c.id }

// Image returns the image the container was created from.
func (c *Container) Image() Image { return c.image.clone() }

// CreatedAt returns when the engine reported the container as started.
func (c *Container) CreatedAt() time.Time { return c.createdAt }

func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Container) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

// Info inspects the container.
func (c *Container) Info(ctx context.Context) (*ports.ContainerInfo, error) {
	return c.client.Inspect(ctx, c.id)
}

// Ports returns the published ports. Every call inspects the container
// again.
func (c *Container) Ports(ctx context.Context) (*ports.Table, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	return info.Ports()
}

// HostPort returns the host port internal is published on. The second
// result is false when the port is not published.
func (c *Container) HostPort(ctx context.Context, internal uint16) (uint16, bool, error) {
	table, err := c.Ports(ctx)
	if err != nil {
		return 0, false, err
	}
	host, ok := table.MapToHostPort(internal)
	if !ok {
		logging.Warn(containerSubsystem, "Port %d of container %s is not published", internal, shortID(c.id))
	}
	return host, ok, nil
}

// waitReady runs the readiness check of the container's image. The logs
// process it starts is killed before it returns.
func (c *Container) waitReady(ctx context.Context) error {
	w := c.image.WaitFor()
	if w.IsNothing() {
		return nil
	}

	deadline := w.Deadline
	if deadline <= 0 {
		deadline = c.client.cfg.ReadyTimeout
	}
	logging.Debug(containerSubsystem, "Waiting for %s of container %s", w, shortID(c.id))

	proc, err := c.client.launcher.Start(ctx, engine.VerbLogs, engine.LogsArgs(c.id)...)
	if err != nil {
		return err
	}
	defer proc.Kill()

	watched, other := proc.Stdout(), proc.Stderr()
	if w.Stream == StreamStderr {
		watched, other = other, watched
	}
	// a full pipe on the unwatched stream would stall the engine
	go func() { _, _ = io.Copy(io.Discard, other) }()

	src := watch.Lines(watched)
	defer src.Close()

	err = watch.WaitForMessage(ctx, src, w.Message, deadline)
	if err != nil && ctx.Err() != nil {
		// cancelling ctx also kills the logs process, which may be observed
		// as the end of the stream first
		return ctx.Err()
	}
	return err
}
