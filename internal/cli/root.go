package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/seriesync/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
	Root    string
	Config  string

	cfg *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the seriesync CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seriesync",
		Short: "Keep a series data tree in step with its specification",
		Long: `seriesync checks a directory of economic time-series files against the
series specification that declares them.

It verifies that every declared series has its data file, lists files no
longer declared, computes the remaining work of an interrupted download
pass, and checks that every resource directory holds only the file types
it should.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.Verbose)

			cfg, err := opts.settings()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			if !cmd.Flags().Changed("format") {
				opts.Format = cfg.Format
			}
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", ".", "data root directory")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "project file (default <root>/"+config.DefaultFile+")")

	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewOrphansCommand(opts))
	cmd.AddCommand(NewResumeCommand(opts))
	cmd.AddCommand(NewCheckpointCommand(opts))
	cmd.AddCommand(NewLsCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewMetaCommand(opts))
	cmd.AddCommand(NewSelectCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))

	return cmd
}

// settings loads the project file once.
func (o *RootOptions) settings() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	root := o.Root
	if root == "" {
		root = "."
	}
	cfg, err := config.Load(root, o.Config)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	return cfg, nil
}

// setupLogging installs the default slog handler. Logs never go to stdout
// so structured output stays parseable.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
