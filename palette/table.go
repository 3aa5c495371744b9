// Package palette turns the user's ordered hue list into a color lookup table and maps
// escape-time values to positions in that table.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	mandel "github.com/marben/mandel_hues"
)

// Table is the RGB lookup table derived from a hue list. It is never empty.
type Table []mandel.RGB

// Build derives the lookup table of hues, in list order. Each entry uses its Color, else its
// decoded Hex, else black. An empty list yields a single black entry.
func Build(hues []mandel.Hue) Table {
	if len(hues) == 0 {
		return Table{mandel.Black}
	}
	t := make(Table, len(hues))
	for i, h := range hues {
		t[i] = Resolve(h)
	}
	return t
}

// Resolve returns the color of a single hue.
func Resolve(h mandel.Hue) mandel.RGB {
	if h.Color != nil {
		return *h.Color
	}
	if c, ok := ParseHex(h.Hex); ok {
		return c
	}
	return mandel.Black
}

// ParseHex decodes "#rrggbb", "#rgb" or the same without the leading '#'.
func ParseHex(s string) (mandel.RGB, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return mandel.Black, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return mandel.Black, false
	}
	return fromColorful(c), true
}

// Hex formats c as "#rrggbb".
func Hex(c mandel.RGB) string {
	return toColorful(c).Hex()
}
