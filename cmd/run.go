package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/giantswarm/ephemera/internal/config"
	"github.com/giantswarm/ephemera/internal/container"
)

type runOptions struct {
	file         string
	stdout       bool
	stderr       bool
	keep         bool
	readyTimeout time.Duration
	quiet        bool
	values       map[string]string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [image-name]",
		Short: "Start a container and keep it until interrupted",
		Long: `Starts a container from an image document, waits until it is ready and
prints its published ports. Container logs are printed until the command
is interrupted, then the container is removed, or only stopped when it is
kept. --keep decides when given; otherwise KEEP_CONTAINERS=true keeps, and
without either the configuration file's keepContainers applies.

The image document is read from --file, or looked up by name among the
images saved with "ephemera image save". Documents are templates: --set
values are available as {{ .name }} together with the sprig functions.`,
		Example: `  ephemera run -f postgres.yaml
  ephemera run postgres --stderr=false --set password=secret`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := loadImageArg(opts.file, args, opts.values)
			if err != nil {
				return err
			}
			return runContainer(cmd, img, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Image document (YAML or JSON)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", true, "Print the container's standard output")
	cmd.Flags().BoolVar(&opts.stderr, "stderr", true, "Print the container's standard error")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "Stop instead of remove the container on exit")
	cmd.Flags().DurationVar(&opts.readyTimeout, "ready-timeout", 0, "Readiness deadline when the image document sets none")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not show progress")
	cmd.Flags().StringToStringVar(&opts.values, "set", nil, "Template values for the image document (key=value)")

	return cmd
}

// loadImageArg reads the image from file, or from storage when a name is
// given instead.
func loadImageArg(file string, args []string, values map[string]string) (container.Image, error) {
	switch {
	case file != "" && len(args) > 0:
		return container.Image{}, errors.New("specify either --file or an image name, not both")
	case file != "":
		return container.LoadImageFile(file, values)
	case len(args) == 1:
		data, err := config.NewStorageWithPath(configPath).Load(args[0])
		if err != nil {
			return container.Image{}, err
		}
		return container.LoadImageTemplate(data, values)
	default:
		return container.Image{}, errors.New("an image name or --file is required")
	}
}

func runContainer(cmd *cobra.Command, img container.Image, opts *runOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.readyTimeout > 0 {
		cfg.ReadyTimeout = opts.readyTimeout
	}

	var clientOpts []container.Option
	if cmd.Flags().Changed("keep") {
		clientOpts = append(clientOpts, container.WithKeepContainers(opts.keep))
	}
	client := newClient(cfg, clientOpts...)
	defer client.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctr, err := createWithProgress(ctx, cmd, client, img, opts.quiet)
	if err != nil {
		return err
	}
	defer ctr.Close(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", text.FgGreen.Sprint("Container ready:"), ctr.ID())

	tbl, err := ctr.Ports(ctx)
	if err != nil {
		return err
	}
	printPorts(out, ctr.ID(), tbl)

	ctr.RunBackgroundLogs(opts.stdout, opts.stderr)

	if !opts.quiet {
		fmt.Fprintf(out, "%s\n", text.FgHiBlack.Sprint("Press Ctrl+C to tear the container down"))
	}
	<-ctx.Done()
	return nil
}

func createWithProgress(ctx context.Context, cmd *cobra.Command, client *container.Client, img container.Image, quiet bool) (*container.Container, error) {
	if quiet {
		return client.Create(ctx, img)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = fmt.Sprintf(" Waiting for %s to become ready...", img.Descriptor())
	s.Start()
	defer s.Stop()

	ctr, err := client.Create(ctx, img)
	if err != nil {
		s.FinalMSG = text.FgRed.Sprintf("Container from %s failed to start", img.Descriptor()) + "\n"
		return nil, err
	}
	return ctr, nil
}
