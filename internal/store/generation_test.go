package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

func TestWriteGeneration_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := generate(t, engine.New(testEngineOptions("run")...), testDefinition(2))

	seq, err := s.WriteGeneration(ctx, gen, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	rec, err := s.ReadGeneration(ctx, gen.RunID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.Seq)
	assert.Equal(t, "run-0001", rec.RunID)
	assert.Equal(t, gen.DefinitionHash, rec.DefinitionHash)
	assert.Equal(t, gen.Definition, rec.Definition)
	assert.Equal(t, gen.Stats.Vertices, rec.Stats.Vertices)
	assert.Equal(t, gen.Stats.Symbols, rec.Stats.Symbols)
	assert.Nil(t, rec.Viewport)
	assert.Equal(t, ir.EngineVersion, rec.EngineVersion)

	wantHash, err := ir.MeshHash(gen.Mesh)
	require.NoError(t, err)
	assert.Equal(t, wantHash, rec.MeshHash)

	mesh, err := s.ReadMesh(ctx, gen.RunID)
	require.NoError(t, err)
	assert.Equal(t, gen.Mesh, mesh)
}

func TestWriteGeneration_SameRunIDIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	gen := generate(t, engine.New(testEngineOptions("run")...), testDefinition(1))

	first, err := s.WriteGeneration(ctx, gen, nil)
	require.NoError(t, err)
	second, err := s.WriteGeneration(ctx, gen, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	all, err := s.ListGenerations(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWriteGeneration_DefinitionStoredOnce(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	e := engine.New(testEngineOptions("run")...)
	def := testDefinition(2)

	for i := 0; i < 3; i++ {
		_, err := s.WriteGeneration(ctx, generate(t, e, def), nil)
		require.NoError(t, err)
	}

	var definitions int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM definitions`).Scan(&definitions))
	assert.Equal(t, 1, definitions)

	records, err := s.ListByDefinition(ctx, ir.MustDefinitionHash(def))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{records[0].Seq, records[1].Seq, records[2].Seq})

	// identical definitions give identical meshes
	same, err := s.FindByMeshHash(ctx, records[0].MeshHash)
	require.NoError(t, err)
	assert.Len(t, same, 3)
}

func TestListGenerations_LimitKeepsMostRecentInOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	e := engine.New(testEngineOptions("run")...)

	for i := 0; i < 4; i++ {
		_, err := s.WriteGeneration(ctx, generate(t, e, testDefinition(i)), nil)
		require.NoError(t, err)
	}

	recent, err := s.ListGenerations(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "run-0003", recent[0].RunID)
	assert.Equal(t, "run-0004", recent[1].RunID)
	assert.Equal(t, 3, recent[1].Definition.Iterations)
}

func TestListGenerations_EmptyStore(t *testing.T) {
	s := createTestStore(t)

	records, err := s.ListGenerations(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadGeneration_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadGeneration(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	_, err = s.ReadMesh(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestWriteGeneration_Viewport(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	viewport := ir.DefaultViewport()
	opts := append(testEngineOptions("fit"), engine.WithViewport(viewport))
	gen := generate(t, engine.New(opts...), testDefinition(2))

	_, err := s.WriteGeneration(ctx, gen, &viewport)
	require.NoError(t, err)

	rec, err := s.ReadGeneration(ctx, gen.RunID)
	require.NoError(t, err)
	require.NotNil(t, rec.Viewport)
	assert.Equal(t, viewport, *rec.Viewport)
}
