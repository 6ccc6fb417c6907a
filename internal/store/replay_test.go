package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

func TestReplay_Matches(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := generate(t, engine.New(testEngineOptions("run")...), testDefinition(3))
	_, err := s.WriteGeneration(ctx, gen, nil)
	require.NoError(t, err)

	result, err := s.Replay(ctx, gen.RunID, testEngineOptions("replay")...)
	require.NoError(t, err)

	assert.True(t, result.Match)
	assert.Equal(t, result.StoredHash, result.ReplayedHash)
	assert.Equal(t, "replay-0001", result.ReplayRunID)
}

func TestReplay_AppliesStoredViewport(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	viewport := ir.RectFromSize(ir.Origin, 200, 100)
	opts := append(testEngineOptions("run"), engine.WithViewport(viewport))
	gen := generate(t, engine.New(opts...), testDefinition(3))
	_, err := s.WriteGeneration(ctx, gen, &viewport)
	require.NoError(t, err)

	result, err := s.Replay(ctx, gen.RunID, testEngineOptions("replay")...)
	require.NoError(t, err)

	assert.True(t, result.Match)
}

func TestReplay_DetectsChangedMesh(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := generate(t, engine.New(testEngineOptions("run")...), testDefinition(2))
	gen.Mesh.Vertices[0].Position.X += 1
	_, err := s.WriteGeneration(ctx, gen, nil)
	require.NoError(t, err)

	result, err := s.Replay(ctx, gen.RunID, testEngineOptions("replay")...)
	require.NoError(t, err)

	assert.False(t, result.Match)
	assert.NotEqual(t, result.StoredHash, result.ReplayedHash)
}

func TestReplay_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Replay(context.Background(), "missing")
	assert.Error(t, err)
}
