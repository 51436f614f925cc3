package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/giantswarm/ephemera/internal/ports"
)

// newTable creates a table with the standard styling writing to out.
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	return t
}

// printPorts renders the published ports of a container.
func printPorts(out io.Writer, id string, tbl *ports.Table) {
	if tbl.Len() == 0 {
		fmt.Fprintf(out, "%s\n", text.FgYellow.Sprintf("Container %s publishes no ports", id))
		return
	}

	t := newTable(out)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("CONTAINER PORT"),
		text.FgHiCyan.Sprint("HOST PORT"),
	})
	for _, internal := range tbl.Internal() {
		host, _ := tbl.MapToHostPort(internal)
		t.AppendRow(table.Row{internal, host})
	}
	t.Render()
}
