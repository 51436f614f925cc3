package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports <container-id>",
		Short: "Show the host ports a container's ports are published on",
		Long: `Inspects a container and lists each published container port with the
host port it is reachable on. Ports that are exposed but not published are
left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := newClient(cfg)
			defer client.Close()

			info, err := client.Inspect(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", args[0], err)
			}
			tbl, err := info.Ports()
			if err != nil {
				return err
			}

			printPorts(cmd.OutOrStdout(), args[0], tbl)
			return nil
		},
	}
}
