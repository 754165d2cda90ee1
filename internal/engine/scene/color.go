package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a normalized RGBA color. Components are in [0,1].
type Color struct {
	R, G, B, A float64
}

// White is opaque white, the default image tint.
var White = Color{1, 1, 1, 1}

// ParseColor parses "#rrggbb" or "#rrggbbaa" hex notation. A missing alpha
// component defaults to opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex returns the color in "#rrggbbaa" notation.
func (c Color) Hex() string {
	clamp := func(f float64) uint64 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint64(f*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B), clamp(c.A))
}
