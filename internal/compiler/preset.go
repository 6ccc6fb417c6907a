package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/lily/internal/ir"
)

// Preset is the file form of a definition. Every field is optional;
// missing fields take the reference defaults. Iterations is kept as text
// so that a malformed count degrades to 0 like any other caller input.
type Preset struct {
	Axiom        *string  `yaml:"axiom" json:"axiom,omitempty"`
	Rules        *string  `yaml:"rules" json:"rules,omitempty"`
	Instructions *string  `yaml:"instructions" json:"instructions,omitempty"`
	Iterations   *string  `yaml:"iterations" json:"iterations,omitempty"`
	BranchWidth  *float32 `yaml:"branch_width" json:"branch_width,omitempty"`
	BranchColor  *string  `yaml:"branch_color" json:"branch_color,omitempty"`
}

// Definition resolves the preset against the defaults. Only an invalid
// branch color is an error; everything else degrades.
func (p Preset) Definition() (ir.Definition, error) {
	return p.ApplyTo(ir.DefaultDefinition())
}

// ApplyTo overlays the fields set in p onto def.
func (p Preset) ApplyTo(def ir.Definition) (ir.Definition, error) {
	if p.Axiom != nil {
		def.Axiom = *p.Axiom
	}
	if p.Rules != nil {
		def.Rules = *p.Rules
	}
	if p.Instructions != nil {
		def.Instructions = *p.Instructions
	}
	if p.Iterations != nil {
		def.Iterations = ParseIterations(*p.Iterations)
	}
	if p.BranchWidth != nil {
		def.Options.BranchWidth = *p.BranchWidth
	}
	if p.BranchColor != nil {
		c, err := ir.ParseHexColor(*p.BranchColor)
		if err != nil {
			return ir.Definition{}, &CompileError{Field: "branch_color", Message: err.Error()}
		}
		def.Options.BranchColor = c
	}

	return def, nil
}

// LoadPreset reads a preset file. The format is chosen by extension:
// .cue for CUE, .yaml/.yml/.json for YAML (JSON is valid YAML).
func LoadPreset(path string) (ir.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ir.Definition{}, fmt.Errorf("reading preset: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".cue":
		v := cuecontext.New().CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return ir.Definition{}, formatCUEError("cue", err)
		}
		return CompilePreset(v)
	case ".yaml", ".yml", ".json":
		return DecodeYAMLPreset(data)
	default:
		return ir.Definition{}, &CompileError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported preset extension %q: want .cue, .yaml, .yml or .json", ext),
		}
	}
}

// DecodeYAMLPreset decodes a YAML preset document.
func DecodeYAMLPreset(data []byte) (ir.Definition, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ir.Definition{}, &CompileError{Field: "yaml", Message: err.Error()}
	}
	return p.Definition()
}

// CompilePreset extracts a definition from a CUE value.
//
// The value should be the preset struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`axiom: "X", iterations: 5`)
//	def, err := CompilePreset(v)
func CompilePreset(v cue.Value) (ir.Definition, error) {
	if err := v.Err(); err != nil {
		return ir.Definition{}, formatCUEError("cue", err)
	}

	var p Preset
	var err error

	for field, dst := range map[string]**string{
		"axiom":        &p.Axiom,
		"rules":        &p.Rules,
		"instructions": &p.Instructions,
		"branch_color": &p.BranchColor,
	} {
		if *dst, err = lookupString(v, field); err != nil {
			return ir.Definition{}, err
		}
	}

	// iterations may be written as an int or as text
	if it := v.LookupPath(cue.ParsePath("iterations")); it.Exists() {
		var s string
		if n, err := it.Int64(); err == nil {
			s = strconv.FormatInt(n, 10)
		} else if s, err = it.String(); err != nil {
			return ir.Definition{}, formatCUEError("iterations", err)
		}
		p.Iterations = &s
	}

	if w := v.LookupPath(cue.ParsePath("branch_width")); w.Exists() {
		f, err := w.Float64()
		if err != nil {
			return ir.Definition{}, formatCUEError("branch_width", err)
		}
		width := float32(f)
		p.BranchWidth = &width
	}

	return p.Definition()
}

// lookupString returns the string at field, or nil if it is absent.
func lookupString(v cue.Value, field string) (*string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	s, err := fv.String()
	if err != nil {
		return nil, formatCUEError(field, err)
	}
	return &s, nil
}
