package harness

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

// boundsTolerance absorbs float32 rounding in the fit transform.
const boundsTolerance = 1e-3

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// step is the state one set of assertions is checked against.
type step struct {
	gen           *engine.Generation
	quotaExceeded bool
	viewport      *ir.Rect
}

// checkAssertion evaluates a single assertion.
func checkAssertion(s step, a Assertion) error {
	if a.Type == AssertQuotaExceeded {
		if !s.quotaExceeded {
			return &AssertionError{Type: a.Type, Expected: "generation stopped on the symbol quota", Actual: "generation completed"}
		}
		return nil
	}

	if s.quotaExceeded || s.gen == nil {
		return &AssertionError{Type: a.Type, Expected: "a generation", Actual: "generation stopped on the symbol quota"}
	}

	switch a.Type {
	case AssertExpandedEquals:
		return expectString(a.Type, a.Value, s.gen.Expanded)
	case AssertExpandedLength:
		return expectCount(a.Type, a.Count, utf8.RuneCountInString(s.gen.Expanded))
	case AssertProgramEquals:
		return assertProgram(s.gen.Program, a)
	case AssertVertexCount:
		return expectCount(a.Type, a.Count, len(s.gen.Mesh.Vertices))
	case AssertIndexCount:
		return expectCount(a.Type, a.Count, len(s.gen.Mesh.Indices))
	case AssertTriangleCount:
		return expectCount(a.Type, a.Count, s.gen.Mesh.TriangleCount())
	case AssertBoundsWithin:
		return assertBoundsWithin(s.gen.Mesh, *s.viewport)
	case AssertMeshHash:
		hash, err := ir.MeshHash(s.gen.Mesh)
		if err != nil {
			return err
		}
		return expectString(a.Type, a.Value, hash)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func expectString(kind, want, got string) error {
	if want != got {
		return &AssertionError{Type: kind, Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", got)}
	}
	return nil
}

func expectCount(kind string, want, got int) error {
	if want != got {
		return &AssertionError{Type: kind, Expected: fmt.Sprint(want), Actual: fmt.Sprint(got)}
	}
	return nil
}

// assertProgram compares the program in its text form, so scenarios can
// write "forward 10" rather than kind/value pairs.
func assertProgram(program []ir.Instruction, a Assertion) error {
	got := make([]string, len(program))
	for i, in := range program {
		got[i] = in.String()
	}
	want := a.Program
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(want, got) {
		return &AssertionError{
			Type:     a.Type,
			Expected: "[" + strings.Join(want, ", ") + "]",
			Actual:   "[" + strings.Join(got, ", ") + "]",
		}
	}
	return nil
}

func assertBoundsWithin(mesh *ir.Mesh, target ir.Rect) error {
	b := mesh.Bounds()
	inside := b.Min.X >= target.Min.X-boundsTolerance &&
		b.Min.Y >= target.Min.Y-boundsTolerance &&
		b.Max.X <= target.Max.X+boundsTolerance &&
		b.Max.Y <= target.Max.Y+boundsTolerance
	if !inside {
		return &AssertionError{
			Type:     AssertBoundsWithin,
			Expected: fmt.Sprintf("bounds within %v", target),
			Actual:   fmt.Sprintf("%v", b),
		}
	}
	return nil
}
