package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/roach88/lily/internal/ir"
)

// Rewrite applies one rewriting pass of rules to input.
//
// The input is scanned left to right one code point at a time. At each
// position the rules are tried in order and the first whose pattern is a
// prefix of the remaining input wins: its replacement is emitted and the
// rest of the matched span is skipped. Positions with no match are copied
// unchanged. An empty rule set is the identity.
func Rewrite(rules ir.RuleSet, input string) string {
	if len(rules) == 0 {
		return input
	}

	var out strings.Builder
	out.Grow(len(input))

	// bytes of the last match still to be dropped from the output
	skip := 0

	for i := 0; i < len(input); {
		_, size := utf8.DecodeRuneInString(input[i:])

		if skip > 0 {
			skip = max(skip-size, 0)
			i += size
			continue
		}

		matched := false
		for _, rule := range rules {
			if strings.HasPrefix(input[i:], rule.Pattern) {
				out.WriteString(rule.Replacement)
				skip = max(len(rule.Pattern)-size, 0)
				matched = true
				break
			}
		}

		if !matched {
			out.WriteString(input[i : i+size])
		}

		i += size
	}

	return out.String()
}

// Expand applies Rewrite iterations times starting from axiom.
// iterations <= 0 returns the axiom unchanged.
func Expand(rules ir.RuleSet, axiom string, iterations int) string {
	s := axiom
	for n := 0; n < iterations; n++ {
		s = Rewrite(rules, s)
	}
	return s
}
