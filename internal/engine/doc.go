// Package engine launches the external container engine CLI.
//
// The engine (docker, or a CLI compatible engine such as podman) is never
// linked in: every operation is a child process invocation of one of the
// verbs run, logs, inspect, rm and stop. The package knows how to assemble
// argument lists for those verbs and how to start the process with its
// output streams piped back to the caller.
//
// # Launching
//
//	l := engine.New("docker")
//	p, err := l.Start(ctx, engine.VerbLogs, engine.LogsArgs(id)...)
//	if err != nil {
//	    var lerr *engine.LaunchError
//	    if errors.As(err, &lerr) {
//	        // the engine binary is missing or not executable
//	    }
//	}
//	defer p.Kill()
//
// A failure to start the binary is reported as *LaunchError and is never
// retried: a missing engine is a deployment precondition, not a transient
// fault.
//
// # Testing
//
// The process factory is replaceable through WithCommandFunc. The enginetest
// subpackage uses this to re-execute the test binary as a scripted fake
// engine.
package engine
