package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid          bool                  `json:"valid"`
	DefinitionHash string                `json:"definition_hash,omitempty"`
	Rules          int                   `json:"rules"`
	Symbols        int                   `json:"symbols"`
	Iterations     int                   `json:"iterations"`
	Diagnostics    []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var defFlags DefinitionFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report input lines that would be skipped",
		Long: `Check a definition without generating it.

Generation never fails on malformed input: rule and instruction lines
that cannot be parsed are skipped and a malformed iteration count becomes
0. validate lists every such line so typos do not go unnoticed.

Exit codes:
  0 - Every line parses
  1 - Some input would be skipped, or the preset does not compile
  2 - Command error (unreadable file)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, &defFlags, cmd)
		},
	}

	addDefinitionFlags(cmd, &defFlags)
	return cmd
}

func runValidate(opts *RootOptions, defFlags *DefinitionFlags, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	def, err := defFlags.Resolve(cmd)
	if err != nil {
		var compileErr *compiler.CompileError
		if !errors.As(err, &compileErr) {
			return WrapExitError(ExitCommandError, "invalid definition", err)
		}
		if ferr := formatter.Error(ErrCodeInvalidInput, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "invalid preset", err)
	}

	if defFlags.Preset != "" {
		formatter.VerboseLog("Loaded preset %s", defFlags.Preset)
	}

	c := compiler.Compile(def)
	result := ValidationResult{
		Rules:       len(c.Rules),
		Symbols:     c.Instructions.Len(),
		Iterations:  c.Iterations,
		Diagnostics: compiler.Diagnose(def.Rules, def.Instructions, defFlags.RawIterations(cmd)),
	}
	result.Valid = len(result.Diagnostics) == 0
	if result.DefinitionHash, err = ir.DefinitionHash(def); err != nil {
		return WrapExitError(ExitCommandError, "failed to hash definition", err)
	}

	if opts.Format == "json" {
		var failure *CLIError
		if !result.Valid {
			failure = &CLIError{
				Code:    ErrCodeDiagnostics,
				Message: fmt.Sprintf("%d input line(s) would be skipped", len(result.Diagnostics)),
			}
		}
		if err := writeResponse(cmd.OutOrStdout(), result, failure); err != nil {
			return err
		}
	} else {
		outputValidateText(cmd.OutOrStdout(), result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d input line(s) would be skipped", len(result.Diagnostics)))
	}
	return nil
}

func outputValidateText(w io.Writer, r ValidationResult) {
	if r.Valid {
		fmt.Fprintf(w, "✓ Definition is valid (%d rules, %d symbols, %d iterations)\n", r.Rules, r.Symbols, r.Iterations)
		return
	}

	fmt.Fprintf(w, "✗ %d input line(s) would be skipped:\n", len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
