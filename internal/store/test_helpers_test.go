package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
	"github.com/roach88/lily/internal/logging"
	"github.com/roach88/lily/internal/testutil"
)

// createTestStore creates a new store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testDefinition is the reference plant cut down to a few passes.
func testDefinition(iterations int) ir.Definition {
	def := ir.DefaultDefinition()
	def.Iterations = iterations
	return def
}

// testEngineOptions returns quiet, deterministic engine options.
func testEngineOptions(prefix string) []engine.Option {
	return []engine.Option{
		engine.WithLogger(logging.NewNop()),
		engine.WithRunIDGenerator(testutil.NewFixedRunIDs(prefix)),
	}
}

// generate runs def through a deterministic engine.
func generate(t *testing.T, e *engine.Engine, def ir.Definition) *engine.Generation {
	t.Helper()
	gen, err := e.Generate(context.Background(), def)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return gen
}
