package compiler

import (
	"slices"

	"github.com/roach88/lily/internal/ir"
)

// Compiled is a definition with its text sources parsed. Instructions
// always carry the reserved branch symbols.
type Compiled struct {
	Axiom        string
	Rules        ir.RuleSet
	Instructions *ir.InstructionSet
	Iterations   int
	Options      ir.SystemOptions
}

// Compile parses every text source of def. It never fails: unparseable
// lines are dropped and a negative iteration count becomes 0. Text is
// matched exactly as given; composed and decomposed spellings of a
// character are different symbols.
func Compile(def ir.Definition) Compiled {
	return Compiled{
		Axiom:        def.Axiom,
		Rules:        ParseRules(def.Rules),
		Instructions: WithReservedSymbols(ParseInstructions(def.Instructions)),
		Iterations:   max(def.Iterations, 0),
		Options:      def.Options,
	}
}

// Equal reports whether c and o would generate the same mesh. Text edits
// that do not change the parsed result (whitespace, comments, invalid
// lines) compare equal, so callers can skip regeneration for them.
func (c Compiled) Equal(o Compiled) bool {
	return c.Axiom == o.Axiom &&
		slices.Equal(c.Rules, o.Rules) &&
		c.Instructions.Equal(o.Instructions) &&
		c.Iterations == o.Iterations &&
		c.Options == o.Options
}
