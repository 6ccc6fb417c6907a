package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

func testGeneration() *engine.Generation {
	program := []ir.Instruction{ir.Forward(10), ir.Push(), ir.Forward(10), ir.Pop(), ir.Forward(10)}
	return &engine.Generation{
		Expanded: "F[F]F",
		Program:  program,
		Mesh:     engine.BuildMesh(ir.SystemOptions{BranchWidth: 2}, program),
	}
}

func TestCheckAssertion_Passing(t *testing.T) {
	gen := testGeneration()
	hash, err := ir.MeshHash(gen.Mesh)
	require.NoError(t, err)
	viewport := ir.RectFromSize(ir.Point{X: -5, Y: -25}, 10, 30)
	s := step{gen: gen, viewport: &viewport}

	for _, a := range []Assertion{
		{Type: AssertExpandedEquals, Value: "F[F]F"},
		{Type: AssertExpandedLength, Count: 5},
		{Type: AssertProgramEquals, Program: []string{"forward 10", "push", "forward 10", "pop", "forward 10"}},
		{Type: AssertVertexCount, Count: 8},
		{Type: AssertIndexCount, Count: 18},
		{Type: AssertTriangleCount, Count: 6},
		{Type: AssertBoundsWithin},
		{Type: AssertMeshHash, Value: hash},
	} {
		t.Run(a.Type, func(t *testing.T) {
			assert.NoError(t, checkAssertion(s, a))
		})
	}
}

func TestCheckAssertion_Failing(t *testing.T) {
	viewport := ir.RectFromSize(ir.Origin, 1, 1)
	s := step{gen: testGeneration(), viewport: &viewport}

	tests := []struct {
		assertion Assertion
		expected  string
		actual    string
	}{
		{Assertion{Type: AssertExpandedEquals, Value: "F"}, `"F"`, `"F[F]F"`},
		{Assertion{Type: AssertExpandedLength, Count: 4}, "4", "5"},
		{Assertion{Type: AssertVertexCount, Count: 2}, "2", "8"},
		{Assertion{Type: AssertProgramEquals, Program: []string{"push"}}, "[push]", "[forward 10, push, forward 10, pop, forward 10]"},
		{Assertion{Type: AssertMeshHash, Value: "nope"}, `"nope"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.assertion.Type, func(t *testing.T) {
			err := checkAssertion(s, tt.assertion)
			require.Error(t, err)

			assertErr, ok := err.(*AssertionError)
			require.True(t, ok)
			assert.Equal(t, tt.assertion.Type, assertErr.Type)
			assert.Equal(t, tt.expected, assertErr.Expected)
			if tt.actual != "" {
				assert.Equal(t, tt.actual, assertErr.Actual)
			}
		})
	}

	err := checkAssertion(s, Assertion{Type: AssertBoundsWithin})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Assertion failed: bounds_within")
}

func TestCheckAssertion_Quota(t *testing.T) {
	stopped := step{quotaExceeded: true}
	completed := step{gen: testGeneration()}

	assert.NoError(t, checkAssertion(stopped, Assertion{Type: AssertQuotaExceeded}))
	assert.Error(t, checkAssertion(completed, Assertion{Type: AssertQuotaExceeded}))

	err := checkAssertion(stopped, Assertion{Type: AssertVertexCount, Count: 8})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation stopped on the symbol quota")
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{Type: "vertex_count", Expected: "2", Actual: "8"}
	assert.Equal(t, "Assertion failed: vertex_count\n  Expected: 2\n  Actual: 8", err.Error())
}
