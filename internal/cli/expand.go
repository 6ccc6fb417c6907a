package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/engine"
)

// ExpandOptions holds flags for the expand command.
type ExpandOptions struct {
	*RootOptions
	Definition DefinitionFlags
	Program    bool
	Quota      int
}

// ExpandResult is the JSON form of an expansion.
type ExpandResult struct {
	Expanded string   `json:"expanded"`
	Symbols  int      `json:"symbols"`
	Program  []string `json:"program,omitempty"`
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Print the expanded string",
		Long: `Apply the rewriting rules and print the resulting string, without
drawing it. With --program, print the turtle instructions the string
translates to, one per line.

Examples:
  lily expand --axiom A -n 2
  lily expand --preset fern.cue --program`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(opts, cmd)
		},
	}

	addDefinitionFlags(cmd, &opts.Definition)
	cmd.Flags().BoolVar(&opts.Program, "program", false, "print the translated instructions instead of the string")
	cmd.Flags().IntVar(&opts.Quota, "quota", 0, "maximum symbols in the expanded string (0 = unbounded)")

	return cmd
}

func runExpand(opts *ExpandOptions, cmd *cobra.Command) error {
	def, err := opts.Definition.Resolve(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid definition", err)
	}

	c := compiler.Compile(def)
	quota := engine.NewSymbolQuota(opts.Quota)

	var expanded string
	if quota.Limit() <= 0 {
		expanded = engine.Expand(c.Rules, c.Axiom, c.Iterations)
	} else {
		// one pass at a time so the quota can stop a runaway grammar early
		expanded = c.Axiom
		for pass := 1; pass <= c.Iterations; pass++ {
			expanded = engine.Rewrite(c.Rules, expanded)
			if err := quota.Check(pass, expanded); err != nil {
				return WrapExitError(ExitFailure, "expansion stopped", err)
			}
		}
	}

	result := ExpandResult{
		Expanded: expanded,
		Symbols:  utf8.RuneCountInString(expanded),
	}
	if opts.Program {
		for _, in := range engine.Translate(c.Instructions, expanded) {
			result.Program = append(result.Program, in.String())
		}
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeResponse(w, result, nil)
	}

	if !opts.Program {
		fmt.Fprintln(w, result.Expanded)
		return nil
	}
	for _, line := range result.Program {
		fmt.Fprintln(w, line)
	}
	return nil
}
