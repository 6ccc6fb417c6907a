package testutil

import "fmt"

// FixedRunIDs generates predictable run IDs for tests: "<prefix>-0001",
// "<prefix>-0002", and so on.
//
// The same scenario with a fresh FixedRunIDs produces byte-identical
// history rows and golden output.
//
// Safe for concurrent use.
type FixedRunIDs struct {
	prefix string
	seq    Counter
}

// NewFixedRunIDs creates a run ID generator.
//
// If prefix is empty, "test-run" is used.
func NewFixedRunIDs(prefix string) *FixedRunIDs {
	if prefix == "" {
		prefix = "test-run"
	}
	return &FixedRunIDs{prefix: prefix}
}

// Generate returns the next run ID.
//
// Implements engine.RunIDGenerator.
func (g *FixedRunIDs) Generate() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq.Next())
}

// Reset restarts numbering at 1.
func (g *FixedRunIDs) Reset() {
	g.seq.Reset()
}
