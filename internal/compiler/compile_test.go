package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/lily/internal/ir"
)

func TestCompile_Defaults(t *testing.T) {
	c := Compile(ir.DefaultDefinition())

	assert.Equal(t, "A", c.Axiom)
	assert.Equal(t, ir.RuleSet{
		{Pattern: "A", Replacement: "F[-A]F[-A]+FA"},
		{Pattern: "F", Replacement: "FF"},
	}, c.Rules)
	assert.Equal(t, 7, c.Iterations)

	in, ok := c.Instructions.Lookup('[')
	assert.True(t, ok)
	assert.Equal(t, ir.Push(), in)
}

func TestCompile_KeepsTextAsGiven(t *testing.T) {
	def := ir.DefaultDefinition()
	def.Axiom = "e\u0301F"
	def.Rules = "e -> X"
	def.Instructions = "e = forward 1"

	c := Compile(def)

	assert.Equal(t, "e\u0301F", c.Axiom)
	assert.Equal(t, "e", c.Rules[0].Pattern)
	_, ok := c.Instructions.Lookup('e')
	assert.True(t, ok)
	_, ok = c.Instructions.Lookup('\u00e9')
	assert.False(t, ok)
}

func TestCompile_NegativeIterations(t *testing.T) {
	def := ir.DefaultDefinition()
	def.Iterations = -4
	assert.Equal(t, 0, Compile(def).Iterations)
}

func TestCompiled_Equal(t *testing.T) {
	base := ir.DefaultDefinition()

	reformatted := base
	reformatted.Rules = "  A ->   F[-A]F[-A]+FA\n\nnonsense\nF->FF\n"
	assert.True(t, Compile(base).Equal(Compile(reformatted)), "formatting-only edits compare equal")

	reordered := base
	reordered.Rules = "F -> FF\nA -> F[-A]F[-A]+FA"
	assert.False(t, Compile(base).Equal(Compile(reordered)), "rule order is priority")

	widened := base
	widened.Options.BranchWidth = 5
	assert.False(t, Compile(base).Equal(Compile(widened)))

	userBrackets := base
	userBrackets.Instructions = base.Instructions + "\n[ = forward 3"
	assert.True(t, Compile(base).Equal(Compile(userBrackets)), "reserved symbols always win")
}

func TestDiagnose(t *testing.T) {
	diags := Diagnose(
		"A -> B\nbroken\n\nC -> D",
		"F = forward 1\nG = warp 2\nH = forward\nI = turn x\nJ\n",
		"lots",
	)

	assert.Equal(t, []Diagnostic{
		{Source: SourceRules, Line: 2, Text: "broken", Reason: "missing ->"},
		{Source: SourceInstructions, Line: 2, Text: "G = warp 2", Reason: `unknown command "warp"`},
		{Source: SourceInstructions, Line: 3, Text: "H = forward", Reason: "forward needs a numeric argument"},
		{Source: SourceInstructions, Line: 4, Text: "I = turn x", Reason: `invalid turn argument "x"`},
		{Source: SourceInstructions, Line: 5, Text: "J", Reason: "expected <symbol> = <command>"},
		{Source: SourceIterations, Text: "lots", Reason: "not an integer, using 0"},
	}, diags)
}

func TestDiagnose_Clean(t *testing.T) {
	def := ir.DefaultDefinition()
	assert.Empty(t, Diagnose(def.Rules, def.Instructions, "7"))
	assert.Empty(t, Diagnose("", "", ""))
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Source: SourceRules, Line: 2, Text: "x", Reason: "missing ->"}
	assert.Equal(t, `rules:2: missing ->: "x"`, d.String())

	d = Diagnostic{Source: SourceIterations, Text: "-1", Reason: "negative, using 0"}
	assert.Equal(t, `iterations: negative, using 0: "-1"`, d.String())
}
