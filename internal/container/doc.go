// Package container manages throwaway containers used as test dependencies.
//
// A Client starts containers from an Image through the engine CLI, waits
// until they are ready and hands out Container handles. Every handle must be
// closed exactly once; Close either stops or removes the container depending
// on the KEEP_CONTAINERS setting at the time of the call.
//
// # Readiness
//
// An Image carries a WaitFor describing when a fresh container counts as
// ready. WaitForNothing returns as soon as the engine reported the
// identifier. MessageOnStdout and MessageOnStderr follow the container's
// logs until a line contains the given message:
//
//	img := container.NewImage("postgres:11-alpine").
//		WithEnvVar("POSTGRES_PASSWORD", "secret").
//		WithWaitFor(container.MessageOnStderr(
//			"database system is ready to accept connections", 20*time.Second))
//
//	err := client.With(ctx, img, func(c *container.Container) error {
//		port, ok, err := c.HostPort(ctx, 5432)
//		...
//	})
//
// When readiness fails the container is torn down and a *ReadinessError is
// returned; no handle is created.
//
// # Call styles
//
// Client methods take a context and may be called from any goroutine.
// Client.CreateAsync returns a bridge.Future instead of blocking, and
// Client.Blocking returns a facade without context arguments that runs every
// operation on the client's executor goroutine.
package container
