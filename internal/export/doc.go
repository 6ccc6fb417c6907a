// Package export encodes meshes for use outside lily.
//
// Three formats are supported:
//
//	obj   Wavefront OBJ: one "v x y 0" line per vertex and one 1-based
//	      "f a b c" line per triangle
//	svg   one filled polygon per triangle, viewBox set to the mesh bounds
//	json  the mesh's vertices and indices as produced by the builder
//
// Encoders write coordinates with the shortest decimal form that round
// trips a float32, so output is byte-stable for identical meshes.
package export
