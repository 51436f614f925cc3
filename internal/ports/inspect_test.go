package ports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postgresInspect = `[
  {
    "Id": "4f2a9c1e7b3d",
    "Name": "/quirky_hopper",
    "NetworkSettings": {
      "Ports": {
        "5432/tcp": [
          {"HostIp": "0.0.0.0", "HostPort": "49155"},
          {"HostIp": "::", "HostPort": "49156"}
        ],
        "5433/tcp": null,
        "8125/udp": [],
        "9187/tcp": [{"HostIp": "0.0.0.0", "HostPort": "49157"}]
      }
    }
  }
]`

func TestParse_PortTable(t *testing.T) {
	info, err := Parse([]byte(postgresInspect))
	require.NoError(t, err)
	assert.Equal(t, "4f2a9c1e7b3d", info.ID)

	table, err := info.Ports()
	require.NoError(t, err)

	host, ok := table.MapToHostPort(5432)
	assert.True(t, ok)
	assert.Equal(t, uint16(49155), host, "first binding wins")

	_, ok = table.MapToHostPort(5433)
	assert.False(t, ok, "unbound port must be omitted")

	_, ok = table.MapToHostPort(8125)
	assert.False(t, ok, "empty binding list must be omitted")

	host, ok = table.MapToHostPort(9187)
	assert.True(t, ok)
	assert.Equal(t, uint16(49157), host)

	assert.Equal(t, []uint16{5432, 9187}, table.Internal())
}

func TestParse_NoPorts(t *testing.T) {
	info, err := Parse([]byte(`[{"Id":"abc","NetworkSettings":{"Ports":{}}}]`))
	require.NoError(t, err)

	table, err := info.Ports()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())

	info, err = Parse([]byte(`[{"Id":"abc"}]`))
	require.NoError(t, err)
	table, err = info.Ports()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestParse_Cardinality(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty array", input: `[]`},
		{name: "two descriptions", input: `[{"Id":"a"},{"Id":"b"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCardinality))

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`Error: No such object: abc`))
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "decoding JSON", perr.Reason)
	assert.False(t, errors.Is(err, ErrCardinality))
}

func TestContainerInfo_PortsInvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "host port not numeric", input: `[{"Id":"a","NetworkSettings":{"Ports":{"80/tcp":[{"HostIp":"0.0.0.0","HostPort":"http"}]}}}]`},
		{name: "host port out of range", input: `[{"Id":"a","NetworkSettings":{"Ports":{"80/tcp":[{"HostIp":"0.0.0.0","HostPort":"70000"}]}}}]`},
		{name: "internal port not numeric", input: `[{"Id":"a","NetworkSettings":{"Ports":{"web/tcp":[{"HostIp":"0.0.0.0","HostPort":"8080"}]}}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse([]byte(tt.input))
			require.NoError(t, err)

			_, err = info.Ports()
			require.Error(t, err)
			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}
