// Package harness runs L-system scenarios as executable tests.
//
// A scenario names a definition (inline, from a preset file, or both, the
// inline fields overriding the preset), runs it through the engine, and
// checks assertions against the expanded string, the instruction program
// and the mesh.
//
// # Scenario Format
//
//	name: branch_push_pop
//	description: "F[F]F stitches the third segment to the root edge"
//	preset: presets/plant.yaml        # optional, relative to the scenario
//	definition:
//	  axiom: "F[F]F"
//	  instructions: "F = forward 10"
//	  iterations: 0
//	  branch_width: 2
//	viewport: { width: 450, height: 450 }   # optional
//	quota: 1000                             # optional
//	golden: true                            # compare OBJ with testdata/golden
//	assertions:
//	  - type: expanded_equals
//	    value: "F[F]F"
//	  - type: vertex_count
//	    count: 8
//	edits:
//	  - definition: { rules: " A -> AB " }
//	    regenerated: false
//
// # Assertion Types
//
//   - expanded_equals: the expanded string equals value
//   - expanded_length: the expanded string holds count symbols
//   - program_equals: the instruction program, one "forward 10" style
//     entry per instruction, equals program
//   - vertex_count, index_count, triangle_count: mesh sizes equal count
//   - bounds_within: every vertex lies inside the viewport
//   - mesh_hash: ir.MeshHash of the mesh equals value
//   - quota_exceeded: generation stopped on the symbol quota
//
// # Edits
//
// Edits are applied in order through an engine.Session. Each overlays its
// definition fields onto the previous definition and states whether the
// edit should regenerate the mesh.
//
// # Deterministic Testing
//
// Run IDs come from testutil.FixedRunIDs and logs are discarded, so the
// same scenario always yields the same result and golden output.
package harness
