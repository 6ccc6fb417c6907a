package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/lily/internal/ir"
)

// marshalMesh converts a mesh to compact JSON TEXT for storage.
// HTML escaping is disabled so stored text matches what the HTTP API serves.
func marshalMesh(m *ir.Mesh) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("marshal mesh: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalMesh parses mesh JSON TEXT.
func unmarshalMesh(data string) (*ir.Mesh, error) {
	m := ir.NewMesh()
	if err := json.Unmarshal([]byte(data), m); err != nil {
		return nil, fmt.Errorf("unmarshal mesh: %w", err)
	}
	return m, nil
}

// marshalViewport converts an optional viewport to JSON TEXT.
// A nil viewport is stored as the empty string.
func marshalViewport(v *ir.Rect) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal viewport: %w", err)
	}
	return string(data), nil
}

// unmarshalViewport parses viewport JSON TEXT; "" yields nil.
func unmarshalViewport(data string) (*ir.Rect, error) {
	if data == "" {
		return nil, nil
	}
	var v ir.Rect
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshal viewport: %w", err)
	}
	return &v, nil
}
