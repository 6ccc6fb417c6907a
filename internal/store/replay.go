package store

import (
	"context"
	"fmt"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

// ReplayResult compares a stored mesh with a fresh generation of the same
// definition.
type ReplayResult struct {
	RunID        string `json:"run_id"`
	ReplayRunID  string `json:"replay_run_id"`
	StoredHash   string `json:"stored_hash"`
	ReplayedHash string `json:"replayed_hash"`
	Match        bool   `json:"match"`
}

// Replay regenerates the definition of runID and reports whether the mesh
// is unchanged. The stored viewport, if any, is applied on top of opts.
// The replayed generation is not written back.
func (s *Store) Replay(ctx context.Context, runID string, opts ...engine.Option) (ReplayResult, error) {
	rec, err := s.ReadGeneration(ctx, runID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay: %w", err)
	}

	if rec.Viewport != nil {
		opts = append(opts, engine.WithViewport(*rec.Viewport))
	}
	gen, err := engine.New(opts...).Generate(ctx, rec.Definition)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay %s: %w", runID, err)
	}

	replayed, err := ir.MeshHash(gen.Mesh)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay %s: %w", runID, err)
	}

	return ReplayResult{
		RunID:        runID,
		ReplayRunID:  gen.RunID,
		StoredHash:   rec.MeshHash,
		ReplayedHash: replayed,
		Match:        replayed == rec.MeshHash,
	}, nil
}
