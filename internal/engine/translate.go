package engine

import "github.com/roach88/lily/internal/ir"

// Translate maps each symbol of the expanded string to its instruction.
// Symbols without a mapping emit nothing; order is preserved.
func Translate(set *ir.InstructionSet, symbols string) []ir.Instruction {
	program := make([]ir.Instruction, 0, len(symbols))
	for _, r := range symbols {
		if in, ok := set.Lookup(r); ok {
			program = append(program, in)
		}
	}
	return program
}
