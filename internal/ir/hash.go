package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDefinition = "lily/definition/v1"
	DomainMesh       = "lily/mesh/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefinitionObject converts a definition to its canonical IR form.
func DefinitionObject(def Definition) IRObject {
	return IRObject{
		"axiom":        textValue(def.Axiom),
		"rules":        textValue(def.Rules),
		"instructions": textValue(def.Instructions),
		"iterations":   IRInt(def.Iterations),
		"branch_width": FloatString(def.Options.BranchWidth),
		"branch_color": IRString(def.Options.BranchColor.Hex()),
	}
}

// textValue encodes definition text for hashing. Canonical strings are
// NFC normalized, but generation matches text exactly, so text that is not
// already NFC is hashed as its code points instead.
func textValue(s string) IRValue {
	if norm.NFC.IsNormalString(s) {
		return IRString(s)
	}
	runes := []rune(s)
	out := make(IRArray, len(runes))
	for i, r := range runes {
		out[i] = IRInt(r)
	}
	return out
}

// DefinitionHash computes the content-addressed ID of a definition.
// Identical text, iteration count, and options always hash the same.
func DefinitionHash(def Definition) (string, error) {
	canonical, err := MarshalCanonical(DefinitionObject(def))
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// MeshHash computes the content-addressed ID of a mesh. Vertex colors and
// texture coordinates take part, so two meshes hash equal only when a
// renderer would draw them identically.
func MeshHash(m *Mesh) (string, error) {
	vertices := make(IRArray, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = IRArray{
			FloatString(v.Position.X), FloatString(v.Position.Y),
			FloatString(v.TexCoord.X), FloatString(v.TexCoord.Y),
			IRString(v.Color.Hex()),
		}
	}
	indices := make(IRArray, len(m.Indices))
	for i, idx := range m.Indices {
		indices[i] = IRInt(idx)
	}

	canonical, err := MarshalCanonical(IRObject{
		"vertices": vertices,
		"indices":  indices,
	})
	if err != nil {
		return "", fmt.Errorf("MeshHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainMesh, canonical), nil
}

// MustDefinitionHash is like DefinitionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefinitionHash(def Definition) string {
	h, err := DefinitionHash(def)
	if err != nil {
		panic(err)
	}
	return h
}
