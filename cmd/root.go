package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/ephemera/internal/config"
	"github.com/giantswarm/ephemera/internal/container"
	"github.com/giantswarm/ephemera/internal/engine"
	"github.com/giantswarm/ephemera/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeLaunchFailed indicates the engine CLI could not be started or
	// did not report a container.
	ExitCodeLaunchFailed = 3
	// ExitCodeNotReady indicates the container never became ready.
	ExitCodeNotReady = 4
)

var (
	logLevel   string
	configPath string

	// launcherOptions are passed to every launcher the commands create.
	launcherOptions []engine.Option
)

// rootCmd represents the base command for the ephemera application.
var rootCmd = &cobra.Command{
	Use:   "ephemera",
	Short: "Run throwaway containers for tests",
	Long: `ephemera starts containers through the docker (or podman) CLI, waits
until they report readiness in their logs, shows where their ports are
published and removes them again when you are done.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.InitForCLI(level, cmd.ErrOrStderr())
		return nil
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ephemera version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if engine.IsLaunchError(err) || errors.Is(err, engine.ErrEmptyIdentifier) {
		return ExitCodeLaunchFailed
	}

	if container.IsReadinessError(err) {
		return ExitCodeNotReady
	}

	return ExitCodeError
}

// loadConfig resolves the configuration for a command invocation.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// newLauncher creates the launcher for the configured engine. Known runtime
// names are validated, anything else is taken as a path to the binary.
func newLauncher(cfg config.Config) *engine.Launcher {
	if l, err := engine.NewForRuntime(cfg.Engine, launcherOptions...); err == nil {
		return l
	}
	return engine.New(cfg.Engine, launcherOptions...)
}

func newClient(cfg config.Config, opts ...container.Option) *container.Client {
	opts = append([]container.Option{container.WithLauncher(newLauncher(cfg))}, opts...)
	return container.NewClient(cfg, opts...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config-path", "", "Configuration directory (default is $HOME/.config/ephemera)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPortsCmd())
	rootCmd.AddCommand(newImageCmd())
}
