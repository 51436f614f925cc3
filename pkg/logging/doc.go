// Package logging provides the structured logger shared by every ephemera
// package.
//
// It is a thin layer over log/slog: each entry carries a subsystem attribute
// and an optional error, and the level filter is applied once at
// initialization.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Container", "Container %s is ready", id)
//	logging.Debug("Engine", "Executing command: %s", cmd)
//	logging.Warn("Ports", "Unable to resolve port %d", port)
//	logging.Error("Guard", err, "Failed to remove container %s", id)
//
// # Subsystems
//
//   - Engine: engine CLI invocations
//   - Watch: readiness watching and log tailing
//   - Ports: inspection parsing
//   - Container: lifecycle of container handles
//   - Guard: teardown
//   - Bridge: executor and background tasks
//   - Config: configuration loading
//   - Storage: named image documents
//
// Before InitForCLI is called, only warnings and errors are written to
// stderr, so the packages stay quiet when embedded in a test binary.
package logging
