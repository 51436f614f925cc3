// Package ports turns the engine's inspect output into a lookup table from
// container-internal ports to the host ports they are published on.
package ports
