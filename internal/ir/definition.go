package ir

// Defaults taken from the reference plant.
const (
	DefaultAxiom        = "A"
	DefaultRules        = "A -> F[-A]F[-A]+FA\nF -> FF"
	DefaultInstructions = "F = forward 5\n+ = turn 25\n- = turn -25\n[ = push\n] = pop"
	DefaultIterations   = 7
	DefaultBranchWidth  = float32(3.0)
	DefaultBranchColor  = "#6ac974"
	DefaultViewportSize = float32(450)
)

// SystemOptions configures one mesh-generation pass. It is passed by value
// and never mutated during a build.
type SystemOptions struct {
	BranchColor Color   `json:"branch_color"`
	BranchWidth float32 `json:"branch_width"`
}

// DefaultSystemOptions returns the reference branch color and width.
func DefaultSystemOptions() SystemOptions {
	return SystemOptions{
		BranchColor: MustParseHexColor(DefaultBranchColor),
		BranchWidth: DefaultBranchWidth,
	}
}

// Definition is the raw caller input for one generation: the three text
// sources, the iteration count, and the branch options.
type Definition struct {
	Axiom        string        `json:"axiom"`
	Rules        string        `json:"rules"`
	Instructions string        `json:"instructions"`
	Iterations   int           `json:"iterations"`
	Options      SystemOptions `json:"options"`
}

// DefaultDefinition returns the reference plant.
func DefaultDefinition() Definition {
	return Definition{
		Axiom:        DefaultAxiom,
		Rules:        DefaultRules,
		Instructions: DefaultInstructions,
		Iterations:   DefaultIterations,
		Options:      DefaultSystemOptions(),
	}
}

// DefaultViewport returns the reference display rectangle.
func DefaultViewport() Rect {
	return RectFromSize(Origin, DefaultViewportSize, DefaultViewportSize)
}
