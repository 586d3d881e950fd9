package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGB triple used for fades, mask backdrops, and solid test
// frames.
type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"black": {0, 0, 0},
	"white": {255, 255, 255},
	"gray":  {128, 128, 128},
	"red":   {255, 0, 0},
	"green": {0, 255, 0},
	"blue":  {0, 0, 255},
}

// ParseColor accepts "#rrggbb" hex notation or one of the named colors
// (black, white, gray, red, green, blue). Unrecognized values are an error so
// request validation can fail fast instead of silently rendering black.
func ParseColor(value string) (Color, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return Color{}, fmt.Errorf("parse color: empty value")
	}
	if c, ok := namedColors[trimmed]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(trimmed, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("parse color: %q is not #rrggbb or a named color", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", value, err)
	}
	return Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
	}, nil
}
