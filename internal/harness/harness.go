package harness

import (
	"context"
	"fmt"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
	"github.com/roach88/lily/internal/logging"
	"github.com/roach88/lily/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Assertion failures are reported in the result, not as an error. Run
// fails only if the scenario's definition cannot be resolved or generation
// fails for a reason other than the quota.
func Run(scenario *Scenario) (*Result, error) {
	def, err := scenario.BaseDefinition()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	opts := []engine.Option{
		engine.WithLogger(logging.NewNop()),
		engine.WithRunIDGenerator(testutil.NewFixedRunIDs(scenario.Name)),
		engine.WithSymbolQuota(scenario.Quota),
	}
	var viewport *ir.Rect
	if scenario.Viewport != nil {
		r := scenario.Viewport.Rect()
		viewport = &r
		opts = append(opts, engine.WithViewport(r))
	}

	ctx := context.Background()
	session := engine.New(opts...).NewSession()
	result := NewResult()

	gen, _, err := session.Update(ctx, def)
	quota, err := quotaOnly(err)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result.Generation = gen
	result.QuotaExceeded = quota
	if gen != nil {
		if result.MeshHash, err = ir.MeshHash(gen.Mesh); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	checkAll(result, "", step{gen: gen, quotaExceeded: quota, viewport: viewport}, scenario.Assertions)

	for i, edit := range scenario.Edits {
		if def, err = edit.Definition.ApplyTo(def); err != nil {
			return nil, fmt.Errorf("scenario %s: edits[%d]: %w", scenario.Name, i, err)
		}

		gen, regenerated, err := session.Update(ctx, def)
		quota, err := quotaOnly(err)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: edits[%d]: %w", scenario.Name, i, err)
		}

		er := EditResult{Regenerated: regenerated, QuotaExceeded: quota}
		if gen != nil {
			er.RunID = gen.RunID
		}
		result.Edits = append(result.Edits, er)

		if regenerated != edit.Regenerated {
			result.AddError(fmt.Sprintf("edits[%d]: regenerated = %v, expected %v", i, regenerated, edit.Regenerated))
		}
		checkAll(result, fmt.Sprintf("edits[%d]: ", i), step{gen: gen, quotaExceeded: quota, viewport: viewport}, edit.Assertions)
	}

	return result, nil
}

// quotaOnly separates a quota stop from real failures.
func quotaOnly(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if engine.IsSymbolQuotaError(err) {
		return true, nil
	}
	return false, err
}

func checkAll(result *Result, prefix string, s step, assertions []Assertion) {
	for i, a := range assertions {
		if err := checkAssertion(s, a); err != nil {
			result.AddError(fmt.Sprintf("%sassertions[%d]: %v", prefix, i, err))
		}
	}
}
