package ir

// Rule rewrites a literal pattern into a replacement.
type Rule struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// String renders the rule in rules-text form.
func (r Rule) String() string {
	return r.Pattern + " -> " + r.Replacement
}

// RuleSet is an ordered list of rules. Order is matching priority: when two
// rules match at the same position the earlier one wins. Duplicate patterns
// are allowed.
type RuleSet []Rule

// Patterns returns the rule patterns in priority order.
func (rs RuleSet) Patterns() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Pattern
	}
	return out
}
