package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

// DefinitionFlags selects the definition a command works on: the reference
// plant, overlaid by a preset file, overlaid by individual flags.
type DefinitionFlags struct {
	Preset           string
	Axiom            string
	Rules            string
	RulesFile        string
	Instructions     string
	InstructionsFile string
	Iterations       string
	BranchWidth      float32
	BranchColor      string
}

func addDefinitionFlags(cmd *cobra.Command, f *DefinitionFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.Preset, "preset", "p", "", "CUE or YAML preset file")
	flags.StringVar(&f.Axiom, "axiom", "", "starting string")
	flags.StringVar(&f.Rules, "rules", "", `rewriting rules, one "<pattern> -> <replacement>" per line`)
	flags.StringVar(&f.RulesFile, "rules-file", "", "read rules from a file")
	flags.StringVar(&f.Instructions, "instructions", "", `symbol instructions, one "<symbol> = <command>" per line`)
	flags.StringVar(&f.InstructionsFile, "instructions-file", "", "read instructions from a file")
	flags.StringVarP(&f.Iterations, "iterations", "n", "", "number of rewriting passes")
	flags.Float32Var(&f.BranchWidth, "branch-width", ir.DefaultBranchWidth, "width of the trunk")
	flags.StringVar(&f.BranchColor, "branch-color", ir.DefaultBranchColor, "branch color (#rrggbb or #rrggbbaa)")

	cmd.MarkFlagsMutuallyExclusive("rules", "rules-file")
	cmd.MarkFlagsMutuallyExclusive("instructions", "instructions-file")
}

// Resolve builds the definition. Only flags the user set override the
// preset. Text read from files keeps its line structure, and "\n" escapes
// in inline flag values become newlines so rules fit on one command line.
func (f *DefinitionFlags) Resolve(cmd *cobra.Command) (ir.Definition, error) {
	def := ir.DefaultDefinition()
	if f.Preset != "" {
		var err error
		if def, err = compiler.LoadPreset(f.Preset); err != nil {
			return ir.Definition{}, fmt.Errorf("preset %s: %w", f.Preset, err)
		}
	}

	changed := cmd.Flags().Changed
	var p compiler.Preset

	if changed("axiom") {
		p.Axiom = &f.Axiom
	}
	if changed("rules") {
		rules := unescapeNewlines(f.Rules)
		p.Rules = &rules
	}
	if f.RulesFile != "" {
		rules, err := readTextFile(f.RulesFile)
		if err != nil {
			return ir.Definition{}, err
		}
		p.Rules = &rules
	}
	if changed("instructions") {
		instructions := unescapeNewlines(f.Instructions)
		p.Instructions = &instructions
	}
	if f.InstructionsFile != "" {
		instructions, err := readTextFile(f.InstructionsFile)
		if err != nil {
			return ir.Definition{}, err
		}
		p.Instructions = &instructions
	}
	if changed("iterations") {
		p.Iterations = &f.Iterations
	}
	if changed("branch-width") {
		p.BranchWidth = &f.BranchWidth
	}
	if changed("branch-color") {
		p.BranchColor = &f.BranchColor
	}

	return p.ApplyTo(def)
}

// RawIterations returns the iteration text as given, or "" when it came
// from a preset or the defaults. Used for diagnostics only.
func (f *DefinitionFlags) RawIterations(cmd *cobra.Command) string {
	if cmd.Flags().Changed("iterations") {
		return f.Iterations
	}
	return ""
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// parseViewport parses "WIDTHxHEIGHT". "none" or "" disables fitting.
func parseViewport(s string) (*ir.Rect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return nil, nil
	}

	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return nil, fmt.Errorf("invalid viewport %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(w, 32)
	if err != nil || width <= 0 {
		return nil, fmt.Errorf("invalid viewport width %q", w)
	}
	height, err := strconv.ParseFloat(h, 32)
	if err != nil || height <= 0 {
		return nil, fmt.Errorf("invalid viewport height %q", h)
	}

	r := ir.RectFromSize(ir.Origin, float32(width), float32(height))
	return &r, nil
}

// defaultViewport is the flag form of ir.DefaultViewport.
var defaultViewport = fmt.Sprintf("%gx%g", ir.DefaultViewportSize, ir.DefaultViewportSize)
