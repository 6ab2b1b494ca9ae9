// ABOUTME: Genre color palette and CSS color conversion
// ABOUTME: Cycles the fixed 10-color palette and parses color strings with go-chart's drawing package

package chart

import (
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// GenrePalette is the fixed pie chart palette. Entries 0 and 7 repeat on purpose.
var GenrePalette = [...]string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#B4E1FF", "#FF6384", "#C9CBCF", "#4B5000",
}

// PaletteColors returns n palette colors, wrapping after the last entry
func PaletteColors(n int) []string {
	if n <= 0 {
		return []string{}
	}

	colors := make([]string, n)
	for i := range colors {
		colors[i] = GenrePalette[i%len(GenrePalette)]
	}

	return colors
}

// ParseColor parses a CSS color ("#RRGGBB", "#RGB", "rgb(...)", "rgba(...)" or a
// basic color name). It reports false for anything it cannot read.
func ParseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)

	// drawing.ColorFromHex slices fixed offsets, so only pass it well-formed lengths
	if strings.HasPrefix(s, "#") && len(s) != 4 && len(s) != 7 {
		return drawing.Color{}, false
	}

	c := drawing.ParseColor(s)
	if c.IsZero() && !strings.EqualFold(s, "transparent") {
		return drawing.Color{}, false
	}

	return c, true
}

// Hex formats a CSS color as "#RRGGBB", dropping alpha. Unparseable input is returned unchanged.
func Hex(s string) string {
	c, ok := ParseColor(s)
	if !ok {
		return s
	}

	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
