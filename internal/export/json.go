package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roach88/lily/internal/ir"
)

// WriteJSON writes m as indented JSON.
func WriteJSON(w io.Writer, m *ir.Mesh) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadJSON decodes a mesh written by WriteJSON.
func ReadJSON(r io.Reader) (*ir.Mesh, error) {
	var m ir.Mesh
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return &m, nil
}
