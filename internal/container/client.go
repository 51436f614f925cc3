package container

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/giantswarm/ephemera/internal/bridge"
	"github.com/giantswarm/ephemera/internal/config"
	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/internal/ports"
	"github.com/giantswarm/ephemera/internal/watch"
	"github.com/giantswarm/ephemera/pkg/logging"
)

const containerSubsystem = "Container"

// Option configures a Client.
type Option func(*Client)

// WithLauncher replaces the launcher built from the configured engine.
func WithLauncher(l *engine.Launcher) Option {
	return func(c *Client) {
		if l != nil {
			c.launcher = l
		}
	}
}

// WithRegistry shares a start registry between clients.
func WithRegistry(r *Registry) Option {
	return func(c *Client) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithKeepContainers fixes the teardown policy for containers of this client.
// KEEP_CONTAINERS is then no longer consulted at teardown.
func WithKeepContainers(keep bool) Option {
	return func(c *Client) {
		c.keep = &keep
	}
}

// Client creates containers. It is safe for concurrent use.
type Client struct {
	cfg      config.Config
	launcher *engine.Launcher
	registry *Registry
	executor *bridge.Executor
	// keep overrides the environment when set.
	keep *bool
}

// NewClient returns a client using cfg. Unset fields of cfg take their
// defaults. The client owns an executor goroutine that Close stops.
func NewClient(cfg config.Config, opts ...Option) *Client {
	cfg = cfg.Normalize()
	c := &Client{
		cfg:      cfg,
		launcher: engine.New(cfg.Engine),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.executor = bridge.NewExecutor("client:" + c.launcher.Binary())
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() config.Config {
	return c.cfg
}

// keepContainers reports whether teardown stops instead of removing. An
// explicit WithKeepContainers wins; otherwise KEEP_CONTAINERS is read now,
// falling back to the configuration.
func (c *Client) keepContainers() bool {
	if c.keep != nil {
		return *c.keep
	}
	return config.KeepContainers(c.cfg.KeepContainers)
}

// Registry returns the client's start registry.
func (c *Client) Registry() *Registry {
	return c.registry
}

// Create starts a container from img and waits until it is ready.
//
// Launch failures are returned as *engine.LaunchError, or wrap
// engine.ErrEmptyIdentifier when the engine printed no identifier. A failed
// readiness wait tears the container down and returns *ReadinessError.
func (c *Client) Create(ctx context.Context, img Image) (*Container, error) {
	img = img.clone()

	id, err := c.run(ctx, img)
	if err != nil {
		return nil, err
	}
	c.registry.Register(id, time.Now())

	ctr := newContainer(c, id, img)
	ctr.setState(StateWaitingReady)

	if err := ctr.waitReady(ctx); err != nil {
		ctr.Close(ctx)
		if watch.IsReadinessError(err) {
			return nil, &ReadinessError{ID: id, Err: err}
		}
		return nil, fmt.Errorf("waiting for container %s: %w", shortID(id), err)
	}

	ctr.setState(StateReady)
	logging.Info(containerSubsystem, "Container %s from %s is ready", shortID(id), img.Descriptor())
	return ctr, nil
}

// CreateAsync starts Create on its own goroutine.
func (c *Client) CreateAsync(ctx context.Context, img Image) *bridge.Future[*Container] {
	return bridge.Async(ctx, func(ctx context.Context) (*Container, error) {
		return c.Create(ctx, img)
	})
}

// With creates a container, passes it to fn and tears it down when fn
// returns or panics.
func (c *Client) With(ctx context.Context, img Image, fn func(*Container) error) error {
	ctr, err := c.Create(ctx, img)
	if err != nil {
		return err
	}
	defer ctr.Close(ctx)
	return fn(ctr)
}

// Inspect describes any container known to the engine, including ones this
// client did not create.
func (c *Client) Inspect(ctx context.Context, id string) (*ports.ContainerInfo, error) {
	if id == "" {
		return nil, engine.ErrEmptyIdentifier
	}
	out, err := c.launcher.Output(ctx, engine.VerbInspect, engine.InspectArgs(id)...)
	if err != nil {
		return nil, fmt.Errorf("inspecting container %s: %w", shortID(id), err)
	}
	return ports.Parse(out)
}

// Close stops the client's executor. Containers created by the client are
// not touched.
func (c *Client) Close() {
	c.executor.Close()
}

// run starts the container and returns the identifier from the first line
// of output.
func (c *Client) run(ctx context.Context, img Image) (string, error) {
	proc, err := c.launcher.Start(ctx, engine.VerbRun, engine.RunArgs(img.runOptions())...)
	if err != nil {
		return "", err
	}

	stdout := bufio.NewReader(proc.Stdout())
	line, readErr := stdout.ReadString('\n')
	id := strings.TrimSpace(line)

	if id == "" {
		waitErr := proc.Wait()
		switch {
		case waitErr != nil:
			return "", fmt.Errorf("starting %s: %w: %w", img.Descriptor(), engine.ErrEmptyIdentifier, waitErr)
		case readErr != nil && !errors.Is(readErr, io.EOF):
			return "", fmt.Errorf("starting %s: %w: %w", img.Descriptor(), engine.ErrEmptyIdentifier, readErr)
		default:
			return "", fmt.Errorf("starting %s: %w", img.Descriptor(), engine.ErrEmptyIdentifier)
		}
	}

	// the rest of the output is not needed, but the process still has to be
	// reaped
	go func() {
		_, _ = io.Copy(io.Discard, stdout)
		if err := proc.Wait(); err != nil {
			logging.Warn(containerSubsystem, "run for %s exited with error: %v", shortID(id), err)
		}
	}()

	logging.Debug(containerSubsystem, "Started container %s from %s", shortID(id), img.Descriptor())
	return id, nil
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
