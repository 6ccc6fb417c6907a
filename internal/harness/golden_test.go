package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareGolden(t *testing.T) {
	scenario := loadTestScenario(t, "branch_push_pop")
	result, err := Run(scenario)
	require.NoError(t, err)

	match, err := CompareGolden(scenario, result)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestUpdateGolden_WritesThenMatches(t *testing.T) {
	scenario := loadTestScenario(t, "branch_push_pop")
	scenario.Dir = t.TempDir()
	result, err := Run(scenario)
	require.NoError(t, err)

	_, err = CompareGolden(scenario, result)
	require.Error(t, err, "golden file should not exist yet")

	require.NoError(t, UpdateGolden(scenario, result))
	assert.FileExists(t, filepath.Join(scenario.Dir, "golden", "branch_push_pop.obj"))

	match, err := CompareGolden(scenario, result)
	require.NoError(t, err)
	assert.True(t, match)

	require.NoError(t, os.WriteFile(scenario.GoldenPath(), []byte("# stale\n"), 0644))
	match, err = CompareGolden(scenario, result)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestGolden_NoMesh(t *testing.T) {
	scenario := &Scenario{Name: "none", Dir: t.TempDir()}
	result := NewResult()

	_, err := CompareGolden(scenario, result)
	assert.Error(t, err)
	assert.Error(t, UpdateGolden(scenario, result))
}
