package harness

import "github.com/roach88/lily/internal/engine"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every assertion and edit expectation holds.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Generation is the first generation, or nil if it stopped on the quota.
	Generation *engine.Generation `json:"-"`

	// MeshHash is the content hash of the first generation's mesh.
	MeshHash string `json:"mesh_hash,omitempty"`

	// QuotaExceeded reports that the first generation hit the quota.
	QuotaExceeded bool `json:"quota_exceeded,omitempty"`

	// Edits records what each edit did.
	Edits []EditResult `json:"edits,omitempty"`
}

// EditResult is the outcome of one edit.
type EditResult struct {
	Regenerated   bool   `json:"regenerated"`
	RunID         string `json:"run_id,omitempty"`
	QuotaExceeded bool   `json:"quota_exceeded,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
