package compiler

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/lily/internal/ir"
)

// ParseInstruction parses one "<symbol> = <command> [<arg>]" line.
// The symbol is the first character of the first whitespace-separated
// token. Tokens after the command's argument are ignored.
func ParseInstruction(line string) (rune, ir.Instruction, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[1] != "=" {
		return 0, ir.Instruction{}, false
	}

	symbol, ok := firstSymbol(fields[0])
	if !ok {
		return 0, ir.Instruction{}, false
	}

	in, ok := parseCommand(fields[2:])
	if !ok {
		return 0, ir.Instruction{}, false
	}
	return symbol, in, true
}

// parseCommand parses the command word and its argument, if any.
func parseCommand(fields []string) (ir.Instruction, bool) {
	kind, ok := ir.KindFromName(fields[0])
	if !ok {
		return ir.Instruction{}, false
	}
	if !kind.HasArgument() {
		return ir.Instruction{Kind: kind}, true
	}

	if len(fields) < 2 {
		return ir.Instruction{}, false
	}
	value, ok := parseArgument(fields[1])
	if !ok {
		return ir.Instruction{}, false
	}
	return ir.Instruction{Kind: kind, Value: value}, true
}

// firstSymbol decodes the first character of token. A literal U+FFFD is a
// valid symbol; an invalid UTF-8 byte is not.
func firstSymbol(token string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(token)
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	return r, true
}

// parseArgument parses a float32 argument. Magnitudes beyond float32
// range become ±Inf rather than rejecting the line.
func parseArgument(s string) (float32, bool) {
	value, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return float32(value), true
}

// ParseInstructions parses instructions text line by line. Lines that do
// not parse are dropped; a later line for the same symbol replaces an
// earlier one. Reserved symbols are NOT applied here; see WithReservedSymbols.
func ParseInstructions(text string) *ir.InstructionSet {
	set := ir.NewInstructionSet()
	for _, line := range splitLines(text) {
		if symbol, in, ok := ParseInstruction(line); ok {
			set.Insert(symbol, in)
		}
	}
	return set
}

// WithReservedSymbols binds '[' to Push and ']' to Pop, overriding any
// caller mapping for those symbols, and returns set.
func WithReservedSymbols(set *ir.InstructionSet) *ir.InstructionSet {
	set.Insert(ir.PushSymbol, ir.Push())
	set.Insert(ir.PopSymbol, ir.Pop())
	return set
}
