package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/export"
	"github.com/roach88/lily/internal/store"
)

// HistoryOptions holds flags shared by the history subcommands.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded generations",
		Long: `List, show and replay generations recorded with "lily generate --db"
or "lily serve --db".

Examples:
  lily history list --db history.db
  lily history show --db history.db <run-id> --mesh plant.svg
  lily history replay --db history.db <run-id>`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newHistoryListCommand(opts))
	cmd.AddCommand(newHistoryShowCommand(opts))
	cmd.AddCommand(newHistoryReplayCommand(opts))

	return cmd
}

func (o *HistoryOptions) open() (*store.Store, error) {
	st, err := store.Open(o.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func newHistoryListCommand(opts *HistoryOptions) *cobra.Command {
	var (
		limit      int
		definition string
		meshHash   string
	)

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List recorded generations, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			var records []store.Record
			switch {
			case definition != "":
				records, err = st.ListByDefinition(ctx, definition)
			case meshHash != "":
				records, err = st.FindByMeshHash(ctx, meshHash)
			default:
				records, err = st.ListGenerations(ctx, limit)
			}
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list generations", err)
			}
			if records == nil {
				records = []store.Record{}
			}

			if opts.Format == "json" {
				return writeResponse(cmd.OutOrStdout(), records, nil)
			}
			outputHistoryList(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "show the most recent N generations (0 = all)")
	cmd.Flags().StringVar(&definition, "definition", "", "only generations of this definition hash")
	cmd.Flags().StringVar(&meshHash, "mesh-hash", "", "only generations that produced this mesh hash")
	cmd.MarkFlagsMutuallyExclusive("definition", "mesh-hash")

	return cmd
}

func newHistoryShowCommand(opts *HistoryOptions) *cobra.Command {
	var meshPath string

	cmd := &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show one generation, optionally exporting its mesh",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			rec, err := st.ReadGeneration(ctx, args[0])
			if err != nil {
				return lookupError(args[0], err)
			}

			if meshPath != "" {
				format, err := export.FormatFromPath(meshPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid flag", err)
				}
				mesh, err := st.ReadMesh(ctx, rec.RunID)
				if err != nil {
					return lookupError(rec.RunID, err)
				}
				if err := writeMeshFile(meshPath, format, mesh); err != nil {
					return err
				}
			}

			if opts.Format == "json" {
				return writeResponse(cmd.OutOrStdout(), rec, nil)
			}
			outputHistoryRecord(cmd.OutOrStdout(), rec)
			if meshPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", meshPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meshPath, "mesh", "", "export the stored mesh to a file (.obj, .svg or .json)")
	return cmd
}

func newHistoryReplayCommand(opts *HistoryOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <run-id>",
		Short: "Regenerate a recorded definition and compare meshes",
		Long: `Regenerate the stored definition of a run with the current engine and
check that the mesh is unchanged.

Exit codes:
  0 - The replayed mesh matches the recorded one
  1 - The meshes differ
  2 - Command error (database or run not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open()
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := st.Replay(cmd.Context(), args[0], engine.WithLogger(opts.Logger(cmd)))
			if err != nil {
				return lookupError(args[0], err)
			}

			var failure *CLIError
			if !result.Match {
				failure = &CLIError{Code: ErrCodeReplayMismatch, Message: "replayed mesh differs from the recorded mesh"}
			}

			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				if err := writeResponse(w, result, failure); err != nil {
					return err
				}
			} else if result.Match {
				fmt.Fprintf(w, "✓ %s replays to the same mesh (%s)\n", result.RunID, result.StoredHash)
			} else {
				fmt.Fprintf(w, "✗ %s replays to a different mesh\n", result.RunID)
				fmt.Fprintf(w, "  Recorded: %s\n", result.StoredHash)
				fmt.Fprintf(w, "  Replayed: %s\n", result.ReplayedHash)
			}

			if failure != nil {
				return NewExitError(ExitFailure, failure.Message)
			}
			return nil
		},
	}

	return cmd
}

func lookupError(runID string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", runID))
	}
	return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read run %s", runID), err)
}

func outputHistoryList(w io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No generations recorded.")
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, "#%-4d %s  n=%-2d symbols=%-8d vertices=%-8d %s\n",
			r.Seq, r.RunID, r.Stats.Iterations, r.Stats.Symbols, r.Stats.Vertices, shortHash(r.DefinitionHash))
	}
}

func outputHistoryRecord(w io.Writer, r store.Record) {
	fmt.Fprintf(w, "Run:          %s (#%d)\n", r.RunID, r.Seq)
	fmt.Fprintf(w, "Definition:   %s\n", r.DefinitionHash)
	fmt.Fprintf(w, "  Axiom:      %q\n", r.Definition.Axiom)
	fmt.Fprintf(w, "  Rules:      %q\n", r.Definition.Rules)
	fmt.Fprintf(w, "  Iterations: %d\n", r.Definition.Iterations)
	fmt.Fprintf(w, "  Branch:     width %g, color %s\n", r.Definition.Options.BranchWidth, r.Definition.Options.BranchColor.Hex())
	if r.Viewport != nil {
		fmt.Fprintf(w, "Viewport:     %gx%g\n", r.Viewport.Width(), r.Viewport.Height())
	}
	fmt.Fprintf(w, "Mesh:         %s\n", r.MeshHash)
	fmt.Fprintf(w, "  Symbols:    %d\n", r.Stats.Symbols)
	fmt.Fprintf(w, "  Vertices:   %d\n", r.Stats.Vertices)
	fmt.Fprintf(w, "  Triangles:  %d\n", r.Stats.Indices/3)
	fmt.Fprintf(w, "Engine:       %s (format %s)\n", r.EngineVersion, r.FormatVersion)
}

// shortHash abbreviates a hex hash for listings.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
