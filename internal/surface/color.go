package surface

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor accepts the CSS forms the session hands out: "#rgb", "#rrggbb",
// "#rrggbbaa" and named colors. Anything else falls back to black.
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 5, 7, 9:
			if isHex(s[1:]) {
				return gg.Hex(s).Color(), true
			}
		}
		return color.Black, false
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, true
	}
	return color.Black, false
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
