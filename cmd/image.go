package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/giantswarm/ephemera/internal/config"
	"github.com/giantswarm/ephemera/internal/container"
	pkgstrings "github.com/giantswarm/ephemera/pkg/strings"
)

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage saved image documents",
		Long: `Saved image documents live in the images/ directory of the configuration
directory and can be started by name with "ephemera run <name>".`,
	}
	cmd.AddCommand(newImageSaveCmd(), newImageListCmd(), newImageDeleteCmd())
	return cmd
}

func newImageSaveCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Validate and save an image document under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			if err := container.ValidateImageTemplate(data); err != nil {
				return err
			}
			// documents that need values can only be checked once run
			if rendered, err := container.RenderImage(data, nil); err == nil {
				if _, err := container.LoadImage(rendered); err != nil {
					return err
				}
			}
			if err := config.NewStorageWithPath(configPath).Save(args[0], data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", text.FgGreen.Sprint("Saved image"), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Image document (YAML or JSON)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newImageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved image documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			storage := config.NewStorageWithPath(configPath)
			names, err := storage.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "%s\n", text.FgYellow.Sprint("No saved images"))
				return nil
			}

			t := newTable(out)
			t.AppendHeader(table.Row{
				text.FgHiCyan.Sprint("NAME"),
				text.FgHiCyan.Sprint("DESCRIPTOR"),
				text.FgHiCyan.Sprint("READY WHEN"),
			})
			for _, name := range names {
				descriptor, wait := "?", "?"
				if data, err := storage.Load(name); err == nil {
					if img, err := container.LoadImageTemplate(data, nil); err == nil {
						descriptor, wait = img.Descriptor(), img.WaitFor().String()
					}
				}
				t.AppendRow(table.Row{
					name,
					pkgstrings.Truncate(descriptor, pkgstrings.DefaultMaxLen),
					pkgstrings.Truncate(wait, pkgstrings.DefaultMaxLen),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newImageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved image document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewStorageWithPath(configPath).Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %s\n", args[0])
			return nil
		},
	}
}
