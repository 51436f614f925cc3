// Package bridge lets context-taking operations be driven from blocking and
// non-blocking callers without writing them twice.
//
// Operations are plain functions of a context.Context. Three adapters run
// them:
//
//   - Executor and Call: a single dedicated goroutine per owner drains a FIFO
//     queue. Call blocks its caller until the operation ran there, so
//     blocking callers never drive operations on their own goroutine.
//   - Async and Future: the operation runs on a fresh goroutine and the
//     caller composes the Future with its own select loops.
//   - Detach and Task: fire-and-forget workers for background log tailing.
//     Their errors are logged rather than lost, and a Task can still be
//     observed.
//
// A function running on an Executor must not Call into the same Executor;
// the queue is serial and that call would wait for itself.
package bridge
