package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

// Scenario defines one L-system test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Preset is an optional CUE or YAML preset file. Relative paths are
	// resolved against the scenario file's directory.
	Preset string `yaml:"preset,omitempty"`

	// Definition fields override the preset (or the defaults).
	Definition compiler.Preset `yaml:"definition,omitempty"`

	// Viewport, if set, fits the mesh into a width x height rectangle at
	// the origin.
	Viewport *Viewport `yaml:"viewport,omitempty"`

	// Quota bounds the expanded string; 0 leaves it unbounded.
	Quota int `yaml:"quota,omitempty"`

	// Golden compares the OBJ export with golden/<name>.obj next to the
	// scenario file.
	Golden bool `yaml:"golden,omitempty"`

	// Assertions validate the first generation.
	Assertions []Assertion `yaml:"assertions"`

	// Edits are applied after the assertions, in order.
	Edits []Edit `yaml:"edits,omitempty"`

	// Dir is the directory the scenario was loaded from; golden files live
	// in its golden/ subdirectory. Empty for parsed scenarios.
	Dir string `yaml:"-"`
}

// Viewport is the size of the fit target.
type Viewport struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Rect returns the viewport as a rectangle at the origin.
func (v Viewport) Rect() ir.Rect {
	return ir.RectFromSize(ir.Origin, v.Width, v.Height)
}

// Edit changes the definition of a running session.
type Edit struct {
	// Definition fields replace those of the previous definition.
	Definition compiler.Preset `yaml:"definition"`

	// Regenerated is whether the edit is expected to produce a new mesh.
	Regenerated bool `yaml:"regenerated"`

	// Assertions validate the session's generation after the edit.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion validates one property of a generation.
type Assertion struct {
	// Type selects the check; see the package documentation.
	Type string `yaml:"type"`

	// Value is the expected string (expanded_equals, mesh_hash).
	Value string `yaml:"value,omitempty"`

	// Count is the expected size (expanded_length and the mesh counts).
	Count int `yaml:"count,omitempty"`

	// Program is the expected instruction sequence (program_equals).
	Program []string `yaml:"program,omitempty"`
}

// Assertion type constants.
const (
	AssertExpandedEquals = "expanded_equals"
	AssertExpandedLength = "expanded_length"
	AssertProgramEquals  = "program_equals"
	AssertVertexCount    = "vertex_count"
	AssertIndexCount     = "index_count"
	AssertTriangleCount  = "triangle_count"
	AssertBoundsWithin   = "bounds_within"
	AssertMeshHash       = "mesh_hash"
	AssertQuotaExceeded  = "quota_exceeded"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	scenario.Dir = filepath.Dir(path)
	if scenario.Preset != "" && !filepath.IsAbs(scenario.Preset) {
		scenario.Preset = filepath.Join(scenario.Dir, scenario.Preset)
	}
	if scenario.Preset != "" {
		if _, err := os.Stat(scenario.Preset); err != nil {
			return nil, fmt.Errorf("invalid scenario: preset file not found: %s", scenario.Preset)
		}
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. Preset paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// BaseDefinition resolves the scenario's preset and inline fields.
func (s *Scenario) BaseDefinition() (ir.Definition, error) {
	def := ir.DefaultDefinition()
	if s.Preset != "" {
		var err error
		if def, err = compiler.LoadPreset(s.Preset); err != nil {
			return ir.Definition{}, err
		}
	}
	return s.Definition.ApplyTo(def)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Assertions) == 0 && !s.Golden {
		return fmt.Errorf("assertions list is required unless golden is set")
	}

	if s.Viewport != nil && (s.Viewport.Width <= 0 || s.Viewport.Height <= 0) {
		return fmt.Errorf("viewport width and height must be positive")
	}

	if s.Quota < 0 {
		return fmt.Errorf("quota must be non-negative")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(fmt.Sprintf("assertions[%d]", i), &a, s); err != nil {
			return err
		}
	}

	for i, edit := range s.Edits {
		for j, a := range edit.Assertions {
			if err := validateAssertion(fmt.Sprintf("edits[%d].assertions[%d]", i, j), &a, s); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(where string, a *Assertion, s *Scenario) error {
	if a.Type == "" {
		return fmt.Errorf("%s: type is required", where)
	}

	switch a.Type {
	case AssertExpandedEquals:
		// an empty expansion is a valid expectation
	case AssertMeshHash:
		if a.Value == "" {
			return fmt.Errorf("%s: value is required for %s", where, a.Type)
		}
	case AssertExpandedLength, AssertVertexCount, AssertIndexCount, AssertTriangleCount:
		if a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative for %s", where, a.Type)
		}
	case AssertProgramEquals:
		// an empty program is a valid expectation
	case AssertBoundsWithin:
		if s.Viewport == nil {
			return fmt.Errorf("%s: bounds_within requires a viewport", where)
		}
	case AssertQuotaExceeded:
		if s.Quota == 0 {
			return fmt.Errorf("%s: quota_exceeded requires a quota", where)
		}
	default:
		return fmt.Errorf("%s: unknown assertion type %q", where, a.Type)
	}

	return nil
}
