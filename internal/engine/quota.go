package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// SymbolQuota bounds the length of the expanded string.
//
// Rewriting can grow the string multiplicatively on every pass, so an
// unbounded iteration count is a hazard the caller must guard. The quota is
// checked after every pass; the core Rewrite/Expand functions never enforce
// it themselves.
type SymbolQuota struct {
	limit int // maximum runes after any pass; <= 0 means unlimited
}

// NewSymbolQuota creates a quota. limit <= 0 disables it.
func NewSymbolQuota(limit int) SymbolQuota {
	return SymbolQuota{limit: limit}
}

// Limit returns the configured maximum.
func (q SymbolQuota) Limit() int {
	return q.limit
}

// Check validates the string produced by the given pass (1-based).
// Returns *SymbolQuotaError if it holds more runes than the limit.
func (q SymbolQuota) Check(pass int, s string) error {
	if q.limit <= 0 || len(s) <= q.limit {
		// a string never holds more runes than bytes
		return nil
	}
	if n := utf8.RuneCountInString(s); n > q.limit {
		return &SymbolQuotaError{Pass: pass, Symbols: n, Limit: q.limit}
	}
	return nil
}

// SymbolQuotaError is returned when an expansion pass exceeds the quota.
type SymbolQuotaError struct {
	Pass    int // rewriting pass that crossed the limit (1-based)
	Symbols int // runes produced by that pass
	Limit   int
}

// Error implements the error interface.
func (e *SymbolQuotaError) Error() string {
	return fmt.Sprintf("expansion exceeded symbol quota at pass %d: %d symbols > %d limit",
		e.Pass, e.Symbols, e.Limit)
}

// IsSymbolQuotaError returns true if err is or wraps a SymbolQuotaError.
func IsSymbolQuotaError(err error) bool {
	var qe *SymbolQuotaError
	return errors.As(err, &qe)
}
