package calendar

// Built-in category palette. Unknown categories render in the fallback
// color instead of failing.
var defaultColors = map[int]string{
	1: "#e8433b",
	2: "#f2981d",
	3: "#f5d50a",
	4: "#3ba156",
	5: "#2d7de0",
	6: "#7a51c9",
	7: "#8f6c49",
}

const defaultFallback = "#9aa0a6"

type Palette struct {
	colors   map[int]string
	fallback string
}

// NewPalette builds a palette from configured overrides; empty values fall
// back to the built-in table.
func NewPalette(colors map[int]string, fallback string) *Palette {
	if len(colors) == 0 {
		colors = defaultColors
	}
	if fallback == "" {
		fallback = defaultFallback
	}
	return &Palette{colors: colors, fallback: fallback}
}

// ColorFor resolves the display color for a category.
func (p *Palette) ColorFor(categoryID int) string {
	if color, ok := p.colors[categoryID]; ok {
		return color
	}
	return p.fallback
}
