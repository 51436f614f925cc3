// Package watch consumes line streams produced by the engine's logs verb.
//
// WaitForMessage implements the readiness protocol: it reads lines until one
// contains a marker, bounding every single read by what is left of the
// deadline, so a stream that stalls mid-way fails promptly instead of hanging
// the caller. Tail forwards lines unconditionally until the stream ends and
// is used for diagnostic output.
//
// Both read from a LineSource, which owns the goroutine that pulls lines off
// the underlying reader. Neither function kills the process producing the
// stream; the caller owns that.
package watch
