package server

import (
	"encoding/json"
	"strconv"

	"github.com/roach88/lily/internal/compiler"
	"github.com/roach88/lily/internal/engine"
	"github.com/roach88/lily/internal/ir"
)

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	Axiom        *string  `json:"axiom,omitempty"`
	Rules        *string  `json:"rules,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	BranchWidth  *float32 `json:"branch_width,omitempty"`
	BranchColor  *string  `json:"branch_color,omitempty"`

	// Iterations may be a JSON number or a string. A malformed count
	// becomes 0, like any other caller input.
	Iterations json.RawMessage `json:"iterations,omitempty"`
}

// Definition resolves the request against the defaults.
func (r GenerateRequest) Definition() (ir.Definition, error) {
	p := compiler.Preset{
		Axiom:        r.Axiom,
		Rules:        r.Rules,
		Instructions: r.Instructions,
		BranchWidth:  r.BranchWidth,
		BranchColor:  r.BranchColor,
	}
	if len(r.Iterations) > 0 {
		s := string(r.Iterations)
		if unquoted, err := strconv.Unquote(s); err == nil {
			s = unquoted
		}
		p.Iterations = &s
	}
	return p.Definition()
}

// GenerateResponse is the JSON form of a generation.
type GenerateResponse struct {
	RunID          string       `json:"run_id"`
	DefinitionHash string       `json:"definition_hash"`
	MeshHash       string       `json:"mesh_hash"`
	Seq            int64        `json:"seq,omitempty"` // set when the run was recorded
	Stats          engine.Stats `json:"stats"`
	Mesh           *ir.Mesh     `json:"mesh"`
}
