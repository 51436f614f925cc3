package ports

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/docker/go-connections/nat"

	"github.com/giantswarm/ephemera/pkg/logging"
)

// ErrCardinality is returned when the inspect output does not describe
// exactly one container.
var ErrCardinality = errors.New("expected exactly one container description")

// ParseError reports malformed inspect output.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "invalid inspect output: " + e.Reason
	}
	return fmt.Sprintf("invalid inspect output: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type networkSettings struct {
	Ports nat.PortMap `json:"Ports"`
}

// ContainerInfo is the part of the engine's container description this
// package consumes.
type ContainerInfo struct {
	ID              string          `json:"Id"`
	NetworkSettings networkSettings `json:"NetworkSettings"`
}

// Parse decodes the output of the inspect verb. The engine prints a JSON
// array; it must hold exactly one element.
func Parse(data []byte) (*ContainerInfo, error) {
	var infos []ContainerInfo
	if err := json.Unmarshal(data, &infos); err != nil {
		return nil, &ParseError{Reason: "decoding JSON", Err: err}
	}
	if len(infos) != 1 {
		return nil, &ParseError{Reason: fmt.Sprintf("got %d descriptions", len(infos)), Err: ErrCardinality}
	}

	info := infos[0]
	logging.Debug(portsSubsystem, "Fetched container info for %s with %d port entries", info.ID, len(info.NetworkSettings.Ports))
	return &info, nil
}

// Ports projects the host bindings into a Table. Ports without a host binding
// are skipped; when a port has several bindings the first one wins.
func (c *ContainerInfo) Ports() (*Table, error) {
	table := NewTable()

	for port, bindings := range c.NetworkSettings.Ports {
		if len(bindings) == 0 {
			logging.Debug(portsSubsystem, "Port %s is not mapped to host machine, skipping.", port)
			continue
		}

		internal, err := parsePort(port.Port())
		if err != nil {
			return nil, err
		}
		host, err := parsePort(bindings[0].HostPort)
		if err != nil {
			return nil, err
		}

		table.AddMapping(internal, host)
	}

	return table, nil
}

func parsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, &ParseError{Reason: fmt.Sprintf("port %q", s), Err: err}
	}
	return uint16(n), nil
}
