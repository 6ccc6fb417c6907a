package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/ir"
)

func TestTranslate_PushPopProgram(t *testing.T) {
	set := compiler.ParseInstructions("F = forward 10\n[ = push\n] = pop")

	got := Translate(set, "F[F]F")

	assert.Equal(t, []ir.Instruction{
		ir.Forward(10), ir.Push(), ir.Forward(10), ir.Pop(), ir.Forward(10),
	}, got)
}

func TestTranslate_UnmappedSymbolsSkipped(t *testing.T) {
	set := compiler.ParseInstructions("F = forward 5\n+ = turn 25")

	got := Translate(set, "AF?+BF")

	assert.Equal(t, []ir.Instruction{ir.Forward(5), ir.Turn(25), ir.Forward(5)}, got)
}

func TestTranslate_EmptyInputs(t *testing.T) {
	assert.Empty(t, Translate(ir.NewInstructionSet(), "FFF"))
	assert.Empty(t, Translate(compiler.ParseInstructions("F = forward 1"), ""))
}

func TestTranslate_MultibyteSymbol(t *testing.T) {
	set := compiler.ParseInstructions("é = scale 0.5")

	assert.Equal(t, []ir.Instruction{ir.Scale(0.5), ir.Scale(0.5)}, Translate(set, "éxé"))
}
