package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lily/internal/export"
	"github.com/roach88/lily/internal/ir"
)

// GoldenSuffix is the extension of golden mesh files.
const GoldenSuffix = ".obj"

// GoldenOBJ renders a mesh in the golden file format.
func GoldenOBJ(mesh *ir.Mesh) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.WriteOBJ(&buf, mesh); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GoldenPath returns the golden file of a loaded scenario:
// <scenario dir>/golden/<name>.obj.
func (s *Scenario) GoldenPath() string {
	return filepath.Join(s.Dir, "golden", s.Name+GoldenSuffix)
}

// CompareGolden reports whether the result's mesh matches the scenario's
// golden file.
func CompareGolden(s *Scenario, result *Result) (bool, error) {
	if result.Generation == nil {
		return false, fmt.Errorf("scenario %s produced no mesh", s.Name)
	}

	want, err := os.ReadFile(s.GoldenPath())
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := GoldenOBJ(result.Generation.Mesh)
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, got), nil
}

// UpdateGolden writes the result's mesh as the scenario's golden file.
func UpdateGolden(s *Scenario, result *Result) error {
	if result.Generation == nil {
		return fmt.Errorf("scenario %s produced no mesh", s.Name)
	}

	data, err := GoldenOBJ(result.Generation.Mesh)
	if err != nil {
		return err
	}
	path := s.GoldenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// RunWithGolden executes a scenario and compares its mesh against
// <scenario dir>/golden/<name>.obj.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if result.Generation == nil {
		return result, fmt.Errorf("scenario %s produced no mesh", scenario.Name)
	}

	if err := AssertGolden(t, filepath.Join(scenario.Dir, "golden"), scenario.Name, result.Generation.Mesh); err != nil {
		return result, err
	}
	return result, nil
}

// AssertGolden compares a mesh against <dir>/<name>.obj.
func AssertGolden(t *testing.T, dir, name string, mesh *ir.Mesh) error {
	t.Helper()

	data, err := GoldenOBJ(mesh)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(dir),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, name, data)
	return nil
}
