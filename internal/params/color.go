package params

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses a color given as a dash-separated decimal triple
// ("255-0-0") or as 3 or 6 hex digits with an optional '#' ("f00",
// "#ff0000"). The result is always opaque.
func ParseColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return color.RGBA{}, fmt.Errorf("color is empty")
	}
	if strings.Contains(v, "-") {
		return parseDecimalColor(v)
	}
	return parseHexColor(v)
}

func parseDecimalColor(v string) (color.RGBA, error) {
	parts := strings.Split(v, "-")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("decimal color %q must have three components", v)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("decimal color %q: component %q is not a number", v, p)
		}
		if n < 0 || n > 255 {
			return color.RGBA{}, fmt.Errorf("decimal color %q: component %d out of range 0-255", v, n)
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}

func parseHexColor(v string) (color.RGBA, error) {
	h := strings.TrimPrefix(v, "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("hex color %q must have 3 or 6 digits", v)
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("hex color %q contains non-hex digits", v)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// FormatColor renders c in the decimal triple form accepted by ParseColor.
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("%d-%d-%d", c.R, c.G, c.B)
}
