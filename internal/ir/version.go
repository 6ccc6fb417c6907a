package ir

// Version constants for the definition and mesh formats.
const (
	// FormatVersion is the version of the hashed definition and mesh encodings.
	FormatVersion = "1"

	// EngineVersion is the lily engine version.
	EngineVersion = "0.1.0"
)
