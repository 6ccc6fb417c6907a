// Package engine implements the lily generation pipeline:
//
//	axiom --Rewrite x N--> symbols --Translate--> program --BuildMesh--> mesh --Fit--> display mesh
//
// Rewrite, Translate, BuildMesh and Fit are pure, synchronous functions of
// their inputs. Engine wires them together with logging, an optional symbol
// quota, run IDs, and metrics recording.
//
// Each generation starts from fresh seed vertices and a fresh branch stack;
// nothing is cached between runs.
package engine
