// Package ir provides the foundational types for lily.
//
// This package contains the grammar, instruction, geometry and mesh types
// shared by every other internal package. All other internal packages import
// ir; ir imports nothing internal.
//
// Key design constraints:
//   - Geometry is float32 throughout, matching the vertex layout consumed by
//     renderers (position, texture coordinate, RGBA color)
//   - Mesh vertices and indices are append-only arenas; branches refer to
//     vertices by index, never by pointer
//   - Content hashes use canonical JSON, which forbids floats, so float
//     fields are hashed through their shortest decimal string form
//   - All JSON tags use snake_case
package ir
