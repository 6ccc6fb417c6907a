package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/roach88/lily/internal/ir"
)

// Format names a mesh encoding.
type Format string

const (
	FormatOBJ  Format = "obj"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatOBJ, FormatSVG, FormatJSON}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatOBJ, FormatSVG, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown mesh format %q (want obj, svg or json)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer mesh format from %q: no extension", path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "model/obj"
	}
}

// Write encodes m to w in format f.
func Write(w io.Writer, f Format, m *ir.Mesh) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatSVG:
		return WriteSVG(w, m)
	case FormatJSON:
		return WriteJSON(w, m)
	}
	return fmt.Errorf("unknown mesh format %q", f)
}

// formatFloat renders f in its shortest round-trip form. Negative zero is
// written as 0.
func formatFloat(f float32) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
