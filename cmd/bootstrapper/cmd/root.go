package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/bootstrapper/internal/config"
	"github.com/oshokin/bootstrapper/internal/console"
	domain "github.com/oshokin/bootstrapper/internal/domain/bootstrap"
	"github.com/oshokin/bootstrapper/internal/logger"
	"github.com/oshokin/bootstrapper/internal/service/bootstrap"
	"github.com/oshokin/bootstrapper/internal/version"
)

// errVerbRequired is returned when the program is started without a verb.
var errVerbRequired = errors.New("verb is required")

// cli carries settings shared by all subcommands of one invocation.
type cli struct {
	// settings are read from the environment and overridden by flags.
	settings *config.Settings
	// settingsErr is reported once a command that needs settings runs.
	settingsErr error
}

// Execute runs the bootstrapper CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := NewRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the command tree: one subcommand per verb plus manifest and version.
func NewRootCommand() *cobra.Command {
	settings, err := config.LoadSettings()
	if settings == nil {
		settings = new(config.Settings)
	}

	c := &cli{
		settings:    settings,
		settingsErr: err,
	}

	root := &cobra.Command{
		Use:   "bootstrapper <VERB>",
		Short: "Fetch, verify and build third-party dependencies.",
		Long: `Downloads the third-party source archives listed in the manifest, verifies
their checksums and runs the build scripts that compile them.

The manifest is read from --manifest, from bootstrap.yaml in the working
directory, or taken from the built-in table. Artifacts and <label>.log files
are written to the working directory.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}

			_, err := domain.ParseVerb(args[0])

			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Must specify a verb on the command-line.")
			_ = cmd.Usage()
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			return errVerbRequired
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&settings.Dir, "dir", "C", settings.Dir, "working directory for artifacts and build logs")
	flags.StringVarP(&settings.ManifestPath, "manifest", "m", settings.ManifestPath,
		"path to a YAML or TOML manifest (default: "+config.DefaultManifestFilename+" in the working directory, then built-in)")
	flags.StringVar(&settings.LogLevel, "log-level", settings.LogLevel, "diagnostic log level (debug, info, warn, error)")
	flags.DurationVar(&settings.Timeout, "timeout", settings.Timeout, "timeout of a single download")
	flags.BoolVar(&settings.NoColor, "no-color", settings.NoColor, "disable colored output")

	for _, entry := range verbCommands() {
		root.AddCommand(c.newVerbCommand(entry))
	}

	root.AddCommand(c.newManifestCommand())
	version.AttachCobraVersionCommand(root)

	return root
}

// prepare validates settings, applies the log level and loads the manifest.
func (c *cli) prepare(cmd *cobra.Command) (*config.Manifest, error) {
	if c.settingsErr != nil {
		return nil, c.settingsErr
	}

	if err := c.settings.Validate(); err != nil {
		return nil, err
	}

	level, _ := logger.ParseLogLevel(c.settings.LogLevel)
	logger.SetLevel(level)

	manifest, source, err := config.Load(c.settings)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	logger.DebugKV(cmd.Context(), "Manifest loaded", "source", source)

	return manifest, nil
}

// newBootstrapper builds a Bootstrapper writing to the command's output streams.
func (c *cli) newBootstrapper(cmd *cobra.Command) (*bootstrap.Bootstrapper, error) {
	manifest, err := c.prepare(cmd)
	if err != nil {
		return nil, err
	}

	var options []console.Option
	if c.settings.NoColor {
		options = append(options, console.WithColor(false))
	}

	return bootstrap.New(&bootstrap.Options{
		Dir:        c.settings.Dir,
		Manifest:   manifest,
		Console:    console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), options...),
		HTTPClient: &http.Client{Timeout: c.settings.Timeout},
	})
}
