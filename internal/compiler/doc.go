// Package compiler turns caller-supplied text into the typed grammar and
// instruction forms in package ir.
//
// Three line-oriented mini-languages are accepted, all case-sensitive and
// without escaping:
//
//	rules:         <pattern> -> <replacement>
//	instructions:  <symbol> = forward|turn|scale <float>
//	               <symbol> = push|pop
//	iterations:    a non-negative integer
//
// Parsing never fails. A line that cannot be parsed is dropped and the rest
// of the text is still honored; a malformed iteration count becomes 0.
// Diagnose reports what was dropped for callers that want to surface it.
//
// Presets bundle all inputs of one generation in a CUE or YAML file and are
// the only part of this package that returns errors.
package compiler
