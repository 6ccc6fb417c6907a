package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lily/internal/ir"
)

func TestSession_RegeneratesOnlyOnChange(t *testing.T) {
	s := newTestEngine().NewSession()
	assert.Nil(t, s.Current())

	def := ir.DefaultDefinition()
	def.Iterations = 2

	first, regenerated, err := s.Update(context.Background(), def)
	require.NoError(t, err)
	assert.True(t, regenerated)

	// same parse: extra whitespace and an invalid rule line
	edited := def
	edited.Rules = "  A ->   F[-A]F[-A]+FA \nnot a rule\nF -> FF\n"
	same, regenerated, err := s.Update(context.Background(), edited)
	require.NoError(t, err)
	assert.False(t, regenerated)
	assert.Equal(t, first.RunID, same.RunID)

	edited.Iterations = 3
	next, regenerated, err := s.Update(context.Background(), edited)
	require.NoError(t, err)
	assert.True(t, regenerated)
	assert.NotEqual(t, first.RunID, next.RunID)
	assert.Equal(t, next, s.Current())
}

func TestSession_ErrorKeepsPreviousGeneration(t *testing.T) {
	s := newTestEngine(WithSymbolQuota(100)).NewSession()

	def := ir.DefaultDefinition()
	def.Iterations = 1
	first, _, err := s.Update(context.Background(), def)
	require.NoError(t, err)

	def.Iterations = 7
	current, regenerated, err := s.Update(context.Background(), def)

	require.Error(t, err)
	assert.False(t, regenerated)
	assert.Equal(t, first, current)
	assert.Equal(t, first, s.Current())
}
