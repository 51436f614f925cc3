package container

import (
	"context"

	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/pkg/logging"
)

const guardSubsystem = "Guard"

// Close tears the container down: it is stopped when the client keeps
// containers (see WithKeepContainers and KEEP_CONTAINERS), removed together
// with its volumes otherwise. Only the first call
// does anything; later and concurrent calls return once it has finished.
//
// Teardown runs even when ctx is already cancelled and is bounded by the
// configured teardown timeout. Failures are logged.
func (c *Container) Close(ctx context.Context) {
	c.closeOnce.Do(func() {
		c.teardown(ctx)
	})
}

func (c *Container) teardown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.client.cfg.TeardownTimeout)
	defer cancel()

	verb, args, next := engine.VerbRm, engine.RmArgs(c.id), StateRemoved
	if c.client.keepContainers() {
		verb, args, next = engine.VerbStop, engine.StopArgs(c.id), StateStopped
	}

	logging.Debug(guardSubsystem, "Tearing down container %s with %s", shortID(c.id), verb)
	if _, err := c.client.launcher.Output(ctx, verb, args...); err != nil {
		logging.Error(guardSubsystem, err, "Failed to %s container %s", verb, shortID(c.id))
		return
	}

	c.setState(next)
	logging.Info(guardSubsystem, "Container %s %s", shortID(c.id), next)
}
