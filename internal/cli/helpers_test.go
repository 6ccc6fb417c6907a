package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	scenariosDir   = "../../testdata/scenarios"
	branchGolden   = "../../testdata/scenarios/golden/branch_push_pop.obj"
	binaryTreeYAML = "../../testdata/presets/binary_tree.yaml"
	weedCUE        = "../../testdata/presets/weed.cue"
)

// branchFlags select the F[F]F plant whose mesh coordinates are exact.
var branchFlags = []string{
	"--axiom", "F[F]F",
	"--rules", "",
	"--instructions", "F = forward 10",
	"-n", "0",
	"--branch-width", "2",
}

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func withArgs(base []string, more ...string) []string {
	return append(append([]string{}, base...), more...)
}
