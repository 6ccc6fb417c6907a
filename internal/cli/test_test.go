package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandMissingArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/scenarios"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTestCommandRunsScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", scenariosDir)
	require.NoError(t, err, stdout)

	assert.Contains(t, stdout, "✓ branch_push_pop")
	assert.Contains(t, stdout, "✓ reference_plant")
	assert.Contains(t, stdout, "✓ live_edits")
	assert.Contains(t, stdout, "Test Summary: 6 passed, 0 failed, 6 total")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTestCommandFilterJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "test", scenariosDir, "--filter", "branch_*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "branch_push_pop", resp.Data.Scenarios[0].Name)
	assert.Equal(t, 1, resp.Data.Passed)
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: wrong_count
description: "A single segment has four vertices, not five"
definition:
  axiom: "F"
  rules: ""
  iterations: "0"
assertions:
  - type: vertex_count
    count: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_count.yaml"), []byte(scenario), 0644))

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ wrong_count")
	assert.Contains(t, stdout, "Expected: 5")
	assert.Contains(t, stdout, "Actual: 4")
	assert.Contains(t, stdout, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommandUpdateGolden(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join(scenariosDir, "branch_push_pop.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "branch_push_pop.yaml"), data, 0644))

	// no golden file yet
	_, _, err = execute(t, "test", dir)
	require.Error(t, err)

	stdout, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err, stdout)
	assert.Equal(t, readFile(t, branchGolden), readFile(t, filepath.Join(dir, "golden", "branch_push_pop.obj")))

	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join(scenariosDir, "branch_push_pop.yaml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "branch_push_pop.yaml"), data, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golden"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "branch_push_pop.obj"), []byte("# stale\n"), 0644))

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, stdout, "mesh does not match golden file")
}

func TestTestHelpText(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTestCommand(rootOpts)

	assert.Equal(t, "test <scenarios-dir>", cmd.Use)
	assert.Contains(t, cmd.Long, "golden/<name>.obj")
	assert.NotNil(t, cmd.Flags().Lookup("update"))
	assert.NotNil(t, cmd.Flags().Lookup("filter"))
}

func TestFindScenarioFiles(t *testing.T) {
	files, err := findScenarioFiles(scenariosDir, "")
	require.NoError(t, err)
	assert.Len(t, files, 6)
	for _, f := range files {
		assert.NotContains(t, f, "golden")
	}
}

func TestFindScenarioFilesWithFilter(t *testing.T) {
	files, err := findScenarioFiles(scenariosDir, "*_plant")
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{filepath.Base(files[0]), filepath.Base(files[1])}
	assert.ElementsMatch(t, []string{"fitted_plant.yaml", "reference_plant.yaml"}, names)

	_, err = findScenarioFiles(scenariosDir, "[")
	assert.Error(t, err)
}

func TestFindScenarioFilesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "trees", "golden"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trees", "oak.yaml"), []byte("name: oak\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trees", "golden", "oak.yaml"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "trees", "oak.yaml")}, files)
}
