package compiler

import (
	"strings"

	"github.com/roach88/lily/internal/ir"
)

// RuleSeparator splits a rule line into pattern and replacement.
const RuleSeparator = "->"

// ParseRule parses one "<pattern> -> <replacement>" line.
// Returns false if the line has no separator. Anything after a second
// separator is ignored.
func ParseRule(line string) (ir.Rule, bool) {
	parts := strings.SplitN(line, RuleSeparator, 3)
	if len(parts) < 2 {
		return ir.Rule{}, false
	}

	return ir.Rule{
		Pattern:     strings.TrimSpace(parts[0]),
		Replacement: strings.TrimSpace(parts[1]),
	}, true
}

// ParseRules parses rules text line by line, skipping lines that do not
// parse and preserving the order of those that do.
func ParseRules(text string) ir.RuleSet {
	rules := ir.RuleSet{}
	for _, line := range splitLines(text) {
		if rule, ok := ParseRule(line); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// splitLines splits on '\n' and strips a trailing '\r' from each line.
// A trailing newline does not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
