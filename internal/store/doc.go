// Package store provides SQLite-backed generation history.
//
// The store is append-only and holds two tables:
//   - definitions: content-addressed by ir.DefinitionHash, written once
//   - generations: one row per run, keyed by run ID, with its stats and
//     the generated mesh as JSON
//
// # Ordering
//
// Every generation gets a logical seq assigned inside the insert
// transaction. Listings order by seq, never by wall time, so history reads
// are identical across machines.
//
// # Replay
//
// Replay regenerates a stored definition and compares the mesh hash with
// the stored one. Generation is deterministic, so a mismatch means the
// engine's output changed between versions.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
