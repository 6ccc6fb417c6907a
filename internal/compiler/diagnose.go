package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/lily/internal/ir"
)

// Source names the text a diagnostic refers to.
type Source string

const (
	SourceRules        Source = "rules"
	SourceInstructions Source = "instructions"
	SourceIterations   Source = "iterations"
)

// Diagnostic describes one input the parsers dropped or defaulted.
type Diagnostic struct {
	Source Source `json:"source"`
	Line   int    `json:"line,omitempty"` // 1-based; 0 for single-value sources
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %q", d.Source, d.Line, d.Reason, d.Text)
	}
	return fmt.Sprintf("%s: %s: %q", d.Source, d.Reason, d.Text)
}

// Diagnose reports every non-blank line of rules and instructions that
// would be dropped, and an iteration value that would default to 0.
// Blank lines are never reported. An empty iterations string is not
// reported either.
func Diagnose(rules, instructions, iterations string) []Diagnostic {
	var out []Diagnostic

	for i, line := range splitLines(rules) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := ParseRule(line); !ok {
			out = append(out, Diagnostic{
				Source: SourceRules,
				Line:   i + 1,
				Text:   line,
				Reason: "missing " + RuleSeparator,
			})
		}
	}

	for i, line := range splitLines(instructions) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if reason := instructionProblem(line); reason != "" {
			out = append(out, Diagnostic{
				Source: SourceInstructions,
				Line:   i + 1,
				Text:   line,
				Reason: reason,
			})
		}
	}

	if strings.TrimSpace(iterations) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(iterations))
		switch {
		case err != nil:
			out = append(out, Diagnostic{Source: SourceIterations, Text: iterations, Reason: "not an integer, using 0"})
		case n < 0:
			out = append(out, Diagnostic{Source: SourceIterations, Text: iterations, Reason: "negative, using 0"})
		}
	}

	return out
}

// instructionProblem explains why ParseInstruction rejects line, or
// returns "" if it would be accepted.
func instructionProblem(line string) string {
	if _, _, ok := ParseInstruction(line); ok {
		return ""
	}

	fields := strings.Fields(line)
	switch {
	case len(fields) < 2 || fields[1] != "=":
		return "expected <symbol> = <command>"
	case len(fields) < 3:
		return "missing command"
	}
	if _, ok := firstSymbol(fields[0]); !ok {
		return "invalid symbol"
	}

	kind, ok := ir.KindFromName(fields[2])
	if !ok {
		return fmt.Sprintf("unknown command %q", fields[2])
	}
	if len(fields) < 4 {
		return fmt.Sprintf("%s needs a numeric argument", kind)
	}
	return fmt.Sprintf("invalid %s argument %q", kind, fields[3])
}
