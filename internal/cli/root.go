package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the logger for engine and server diagnostics. It writes
// to the command's stderr so that stdout stays clean for meshes and JSON.
// --verbose implies debug.
func (o *RootOptions) Logger(cmd *cobra.Command) *slog.Logger {
	level := logging.ParseLevel(o.LogLevel)
	if o.Verbose {
		level = slog.LevelDebug
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level)
}

// NewRootCommand creates the root command for the lily CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "lily",
		Short: "lily - L-system plants as triangle meshes",
		Long: `Grow a plant from an L-system grammar and draw it with a turtle.

A definition is an axiom, rewriting rules, symbol instructions and an
iteration count. Definitions come from flags, CUE or YAML presets, or the
built-in reference plant.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main reports the error and picks the exit code
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	// Add subcommands
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewExpandCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
