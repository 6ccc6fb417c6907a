package ir

import (
	"fmt"
	"slices"
	"strconv"
)

// InstructionKind identifies one case of the closed Instruction variant.
type InstructionKind int

// Instruction kinds. The set is closed; the turtle handles each exhaustively.
const (
	KindForward InstructionKind = iota
	KindTurn
	KindScale
	KindPush
	KindPop
)

var kindNames = [...]string{
	KindForward: "forward",
	KindTurn:    "turn",
	KindScale:   "scale",
	KindPush:    "push",
	KindPop:     "pop",
}

// String returns the command word used in instructions text.
func (k InstructionKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("InstructionKind(%d)", int(k))
	}
	return kindNames[k]
}

// HasArgument reports whether the kind carries a numeric argument.
func (k InstructionKind) HasArgument() bool {
	return k == KindForward || k == KindTurn || k == KindScale
}

// KindFromName maps a command word to its kind.
func KindFromName(name string) (InstructionKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return InstructionKind(k), true
		}
	}
	return 0, false
}

// Instruction is a single drawing command. Value is the length for
// KindForward, the angle in degrees for KindTurn, the factor for KindScale,
// and zero for KindPush and KindPop.
type Instruction struct {
	Kind  InstructionKind `json:"kind"`
	Value float32         `json:"value,omitempty"`
}

// Forward moves the turtle by length, drawing a segment.
func Forward(length float32) Instruction { return Instruction{Kind: KindForward, Value: length} }

// Turn rotates the heading by degrees.
func Turn(degrees float32) Instruction { return Instruction{Kind: KindTurn, Value: degrees} }

// Scale multiplies the current branch scale by factor.
func Scale(factor float32) Instruction { return Instruction{Kind: KindScale, Value: factor} }

// Push saves the current branch state.
func Push() Instruction { return Instruction{Kind: KindPush} }

// Pop restores the most recently saved branch state.
func Pop() Instruction { return Instruction{Kind: KindPop} }

// String renders the instruction as it would appear in instructions text.
func (in Instruction) String() string {
	if !in.Kind.HasArgument() {
		return in.Kind.String()
	}
	return in.Kind.String() + " " + strconv.FormatFloat(float64(in.Value), 'g', -1, 32)
}

// Reserved branch symbols. They are always bound to Push and Pop.
const (
	PushSymbol = '['
	PopSymbol  = ']'
)

// InstructionSet maps single symbols to instructions. Inserting a symbol
// twice keeps the last instruction.
type InstructionSet struct {
	m map[rune]Instruction
}

// NewInstructionSet returns an empty set.
func NewInstructionSet() *InstructionSet {
	return &InstructionSet{m: make(map[rune]Instruction)}
}

// Insert binds symbol to in, replacing any earlier binding.
func (s *InstructionSet) Insert(symbol rune, in Instruction) {
	if s.m == nil {
		s.m = make(map[rune]Instruction)
	}
	s.m[symbol] = in
}

// Lookup returns the instruction bound to symbol.
func (s *InstructionSet) Lookup(symbol rune) (Instruction, bool) {
	if s == nil {
		return Instruction{}, false
	}
	in, ok := s.m[symbol]
	return in, ok
}

// Len returns the number of bound symbols.
func (s *InstructionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// Symbols returns the bound symbols in ascending order.
func (s *InstructionSet) Symbols() []rune {
	out := make([]rune, 0, s.Len())
	if s == nil {
		return out
	}
	for r := range s.m {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets bind the same symbols to the same instructions.
func (s *InstructionSet) Equal(o *InstructionSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	if s.Len() == 0 {
		return true
	}
	for r, in := range s.m {
		if other, ok := o.m[r]; !ok || other != in {
			return false
		}
	}
	return true
}
