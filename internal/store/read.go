package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

// Record is one stored generation without its mesh.
type Record struct {
	Seq            int64         `json:"seq"`
	RunID          string        `json:"run_id"`
	DefinitionHash string        `json:"definition_hash"`
	Definition     ir.Definition `json:"definition"`
	Stats          engine.Stats  `json:"stats"`
	MeshHash       string        `json:"mesh_hash"`
	Viewport       *ir.Rect      `json:"viewport,omitempty"`
	EngineVersion  string        `json:"engine_version"`
	FormatVersion  string        `json:"format_version"`
}

const selectRecord = `
	SELECT g.seq, g.run_id, g.definition_hash,
	       d.axiom, d.rules, d.instructions, d.iterations, d.branch_width, d.branch_color,
	       g.iterations, g.rules, g.symbols, g.instructions, g.vertices, g.indices,
	       g.mesh_hash, g.viewport, g.engine_version, g.format_version
	FROM generations g
	JOIN definitions d ON d.hash = g.definition_hash
`

// ReadGeneration retrieves one generation by run ID.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadGeneration(ctx context.Context, runID string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE g.run_id = ?`, runID)

	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("read generation %s: %w", runID, err)
	}
	return rec, nil
}

// ReadMesh retrieves the stored mesh of a generation.
// Returns an error wrapping sql.ErrNoRows if not found.
func (s *Store) ReadMesh(ctx context.Context, runID string) (*ir.Mesh, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT mesh FROM generations WHERE run_id = ?`, runID).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("read mesh %s: %w", runID, err)
	}
	return unmarshalMesh(data)
}

// ListGenerations returns the most recent generations in seq order.
// limit <= 0 returns all of them.
func (s *Store) ListGenerations(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return s.queryRecords(ctx, selectRecord+` ORDER BY g.seq ASC`)
	}
	return s.queryRecords(ctx, `SELECT * FROM (`+selectRecord+` ORDER BY g.seq DESC LIMIT ?) ORDER BY seq ASC`, limit)
}

// ListByDefinition returns every generation of one definition in seq order.
func (s *Store) ListByDefinition(ctx context.Context, definitionHash string) ([]Record, error) {
	return s.queryRecords(ctx, selectRecord+` WHERE g.definition_hash = ? ORDER BY g.seq ASC`, definitionHash)
}

// FindByMeshHash returns every generation that produced the given mesh.
func (s *Store) FindByMeshHash(ctx context.Context, meshHash string) ([]Record, error) {
	return s.queryRecords(ctx, selectRecord+` WHERE g.mesh_hash = ? ORDER BY g.seq ASC`, meshHash)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return records, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec      Record
		width    float64
		color    string
		viewport string
	)
	err := sc.Scan(
		&rec.Seq, &rec.RunID, &rec.DefinitionHash,
		&rec.Definition.Axiom, &rec.Definition.Rules, &rec.Definition.Instructions,
		&rec.Definition.Iterations, &width, &color,
		&rec.Stats.Iterations, &rec.Stats.Rules, &rec.Stats.Symbols,
		&rec.Stats.Instructions, &rec.Stats.Vertices, &rec.Stats.Indices,
		&rec.MeshHash, &viewport, &rec.EngineVersion, &rec.FormatVersion,
	)
	if err == sql.ErrNoRows {
		return Record{}, err
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan generation: %w", err)
	}

	rec.Definition.Options.BranchWidth = float32(width)
	rec.Definition.Options.BranchColor, err = ir.ParseHexColor(color)
	if err != nil {
		return Record{}, fmt.Errorf("scan generation %s: %w", rec.RunID, err)
	}
	rec.Viewport, err = unmarshalViewport(viewport)
	if err != nil {
		return Record{}, fmt.Errorf("scan generation %s: %w", rec.RunID, err)
	}
	return rec, nil
}
