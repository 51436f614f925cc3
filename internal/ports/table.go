package ports

import (
	"sort"

	"github.com/giantswarm/ephemera/pkg/logging"
)

const portsSubsystem = "Ports"

// Table maps container-internal ports to the host ports the engine published
// them on. A port missing from the table is simply not published.
type Table struct {
	mapping map[uint16]uint16
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{mapping: make(map[uint16]uint16)}
}

// AddMapping registers internal -> host and returns the table for chaining.
func (t *Table) AddMapping(internal, host uint16) *Table {
	logging.Debug(portsSubsystem, "Registering port mapping: %d -> %d", internal, host)
	t.mapping[internal] = host
	return t
}

// MapToHostPort returns the host port for internal. The second result is
// false when the port is not published.
func (t *Table) MapToHostPort(internal uint16) (uint16, bool) {
	host, ok := t.mapping[internal]
	return host, ok
}

// Len returns the number of published ports.
func (t *Table) Len() int {
	return len(t.mapping)
}

// Internal returns the published internal ports in ascending order.
func (t *Table) Internal() []uint16 {
	out := make([]uint16, 0, len(t.mapping))
	for p := range t.mapping {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
