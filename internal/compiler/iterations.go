package compiler

import (
	"strconv"
	"strings"
)

// ParseIterations parses an iteration count. Anything that is not a
// non-negative integer yields 0, meaning the axiom is used unexpanded.
func ParseIterations(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
