package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 or 8 hex digits", s)
	}

	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}

	return Color{
		R: float32(n>>24&0xff) / 255,
		G: float32(n>>16&0xff) / 255,
		B: float32(n>>8&0xff) / 255,
		A: float32(n&0xff) / 255,
	}, nil
}

// MustParseHexColor is like ParseHexColor but panics on error.
// Use only for constants.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex renders the color as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c Color) Hex() string {
	r, g, b, a := channel(c.R), channel(c.G), channel(c.B), channel(c.A)
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

func channel(v float32) uint8 {
	v = min(max(v, 0), 1)
	return uint8(v*255 + 0.5)
}
