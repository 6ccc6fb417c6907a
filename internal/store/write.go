package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

// WriteGeneration records gen and returns its seq.
//
// The definition row is content-addressed and written with ON CONFLICT DO
// NOTHING, so rerunning a definition stores its text once. Writing the same
// run ID twice is a no-op that returns the original seq.
//
// viewport is the rectangle the mesh was fitted into, or nil if the mesh
// is in turtle coordinates. Replay needs it to reproduce the mesh.
func (s *Store) WriteGeneration(ctx context.Context, gen *engine.Generation, viewport *ir.Rect) (int64, error) {
	meshJSON, err := marshalMesh(gen.Mesh)
	if err != nil {
		return 0, fmt.Errorf("write generation: %w", err)
	}
	meshHash, err := ir.MeshHash(gen.Mesh)
	if err != nil {
		return 0, fmt.Errorf("write generation: %w", err)
	}
	viewportJSON, err := marshalViewport(viewport)
	if err != nil {
		return 0, fmt.Errorf("write generation: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write generation: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	def := gen.Definition
	_, err = tx.ExecContext(ctx, `
		INSERT INTO definitions
		(hash, axiom, rules, instructions, iterations, branch_width, branch_color)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		gen.DefinitionHash,
		def.Axiom,
		def.Rules,
		def.Instructions,
		def.Iterations,
		float64(def.Options.BranchWidth),
		def.Options.BranchColor.Hex(),
	)
	if err != nil {
		return 0, fmt.Errorf("write generation: insert definition: %w", err)
	}

	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM generations WHERE run_id = ?`, gen.RunID).Scan(&seq)
	switch {
	case err == nil:
		return seq, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("write generation: lookup run: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM generations`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write generation: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generations
		(run_id, seq, definition_hash, iterations, rules, symbols, instructions, vertices, indices,
		 mesh, mesh_hash, viewport, engine_version, format_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		gen.RunID,
		seq,
		gen.DefinitionHash,
		gen.Stats.Iterations,
		gen.Stats.Rules,
		gen.Stats.Symbols,
		gen.Stats.Instructions,
		gen.Stats.Vertices,
		gen.Stats.Indices,
		meshJSON,
		meshHash,
		viewportJSON,
		ir.EngineVersion,
		ir.FormatVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write generation: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write generation: commit: %w", err)
	}
	return seq, nil
}
