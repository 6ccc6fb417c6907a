package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/export"
	"github.com/roach88/lily/internal/ir"
	"github.com/roach88/lily/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Definition DefinitionFlags
	Output     string
	MeshFormat string
	Viewport   string
	Quota      int
	Database   string
	Timeout    time.Duration
}

// GenerateSummary describes one generate run.
type GenerateSummary struct {
	RunID          string                `json:"run_id"`
	DefinitionHash string                `json:"definition_hash"`
	MeshHash       string                `json:"mesh_hash"`
	Seq            int64                 `json:"seq,omitempty"`
	Output         string                `json:"output,omitempty"`
	Format         export.Format         `json:"format"`
	Stats          engine.Stats          `json:"stats"`
	Triangles      int                   `json:"triangles"`
	Diagnostics    []compiler.Diagnostic `json:"diagnostics,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow a plant and export its mesh",
		Long: `Expand the grammar, run the turtle and export the triangle mesh.

Without --output the mesh is written to stdout and nothing else is. With
--output the mesh goes to the file and a summary is printed instead; the
file extension picks the mesh format unless --mesh-format is set.

Lines of rules or instructions that cannot be parsed are skipped and
reported as warnings on stderr.

Exit codes:
  0 - Mesh generated
  1 - Expansion exceeded --quota
  2 - Command error (bad flags, unreadable preset, database error)

Examples:
  lily generate > plant.obj
  lily generate --preset fern.cue -o fern.svg
  lily generate --axiom X --rules 'X -> F[+X]F[-X]+X\nF -> FF' -n 6 -o weed.obj
  lily generate -n 9 --quota 1000000 --db history.db -o big.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	addDefinitionFlags(cmd, &opts.Definition)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the mesh to a file")
	cmd.Flags().StringVar(&opts.MeshFormat, "mesh-format", "", "mesh format (obj|svg|json); default from --output, else obj")
	cmd.Flags().StringVar(&opts.Viewport, "viewport", defaultViewport, `fit the mesh into WIDTHxHEIGHT ("none" keeps turtle coordinates)`)
	cmd.Flags().IntVar(&opts.Quota, "quota", 0, "maximum symbols in the expanded string (0 = unbounded)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the generation in a SQLite history database")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "abort expansion after this long (0 = no limit)")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	log := opts.Logger(cmd)

	def, err := opts.Definition.Resolve(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid definition", err)
	}
	viewport, err := parseViewport(opts.Viewport)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}
	format, err := meshFormat(opts.MeshFormat, opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flag", err)
	}

	diagnostics := compiler.Diagnose(def.Rules, def.Instructions, opts.Definition.RawIterations(cmd))
	for _, d := range diagnostics {
		log.Warn("input skipped", "source", d.Source, "line", d.Line, "text", d.Text, "reason", d.Reason)
	}

	ctx := cmd.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	engineOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithSymbolQuota(opts.Quota),
	}
	if viewport != nil {
		engineOpts = append(engineOpts, engine.WithViewport(*viewport))
	}

	gen, err := engine.New(engineOpts...).Generate(ctx, def)
	if err != nil {
		return generateFailure(opts, cmd, err)
	}

	summary := GenerateSummary{
		RunID:          gen.RunID,
		DefinitionHash: gen.DefinitionHash,
		Output:         opts.Output,
		Format:         format,
		Stats:          gen.Stats,
		Triangles:      gen.Mesh.TriangleCount(),
		Diagnostics:    diagnostics,
	}
	if summary.MeshHash, err = ir.MeshHash(gen.Mesh); err != nil {
		return WrapExitError(ExitCommandError, "failed to hash mesh", err)
	}

	if opts.Database != "" {
		if summary.Seq, err = recordGeneration(ctx, opts.Database, gen, viewport); err != nil {
			return err
		}
		log.Info("generation recorded", "run_id", gen.RunID, "seq", summary.Seq, "db", opts.Database)
	}

	if opts.Output == "" {
		if err := export.Write(cmd.OutOrStdout(), format, gen.Mesh); err != nil {
			return WrapExitError(ExitCommandError, "failed to write mesh", err)
		}
		return nil
	}

	if err := writeMeshFile(opts.Output, format, gen.Mesh); err != nil {
		return err
	}

	if opts.Format == "json" {
		return writeResponse(cmd.OutOrStdout(), summary, nil)
	}
	outputGenerateText(cmd.OutOrStdout(), summary)
	return nil
}

// meshFormat picks the export format: the explicit flag, else the output
// extension, else OBJ.
func meshFormat(flag, output string) (export.Format, error) {
	switch {
	case flag != "":
		return export.ParseFormat(flag)
	case output != "":
		return export.FormatFromPath(output)
	default:
		return export.FormatOBJ, nil
	}
}

func generateFailure(opts *GenerateOptions, cmd *cobra.Command, err error) error {
	var quotaErr *engine.SymbolQuotaError
	if !errors.As(err, &quotaErr) {
		return WrapExitError(ExitCommandError, "generation failed", err)
	}

	if opts.Format == "json" {
		if werr := writeResponse(cmd.OutOrStdout(), quotaErr, &CLIError{Code: ErrCodeQuota, Message: quotaErr.Error()}); werr != nil {
			return werr
		}
	}
	return WrapExitError(ExitFailure, "generation stopped", err)
}

func recordGeneration(ctx context.Context, path string, gen *engine.Generation, viewport *ir.Rect) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	seq, err := st.WriteGeneration(ctx, gen, viewport)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to record generation", err)
	}
	return seq, nil
}

func writeMeshFile(path string, format export.Format, mesh *ir.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output file", err)
	}
	if err := export.Write(f, format, mesh); err != nil {
		f.Close()
		return WrapExitError(ExitCommandError, "failed to write mesh", err)
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to write mesh", err)
	}
	return nil
}

func outputGenerateText(w io.Writer, s GenerateSummary) {
	fmt.Fprintf(w, "✓ Generated %s\n", s.RunID)
	fmt.Fprintf(w, "  Symbols: %d, instructions: %d\n", s.Stats.Symbols, s.Stats.Instructions)
	fmt.Fprintf(w, "  Mesh: %d vertices, %d triangles\n", s.Stats.Vertices, s.Triangles)
	fmt.Fprintf(w, "  Wrote %s (%s)\n", s.Output, s.Format)
	if s.Seq > 0 {
		fmt.Fprintf(w, "  Recorded as #%d\n", s.Seq)
	}
	if len(s.Diagnostics) > 0 {
		fmt.Fprintf(w, "  Skipped %d input line(s)\n", len(s.Diagnostics))
	}
}

