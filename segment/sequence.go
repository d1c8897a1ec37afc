package segment

import "strings"

// Color is a single pill color scheme.
type Color struct {
	Text   string
	Bg     string
	Border string
}

// palette is read only, use ColorAt.
var palette = [...]Color{
	{Text: "#b42318", Bg: "#fff1f0", Border: "#ffccc7"},
	{Text: "#096dd9", Bg: "#e6f4ff", Border: "#91caff"},
	{Text: "#7a1fa2", Bg: "#f9f0ff", Border: "#d3adf7"},
	{Text: "#237804", Bg: "#f6ffed", Border: "#b7eb8f"},
	{Text: "#ad6800", Bg: "#fffbe6", Border: "#ffe58f"},
	{Text: "#c41d7f", Bg: "#fff0f6", Border: "#ffadd2"},
}

// PaletteSize is the number of distinct pill colors.
const PaletteSize = len(palette)

// ColorAt returns pill color for segment position, cycling through the
// palette. Negative positions are folded back into range.
func ColorAt(index int) Color {
	i := index % PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return palette[i]
}

// Separators used by emotion examples.
const (
	SequenceDelimiter = "->"
	TextDelimiter     = "|"
)

// Split cuts text by delimiter, trims every piece and drops empty ones.
func Split(text, delimiter string) []string {
	var res []string
	for _, s := range strings.Split(text, delimiter) {
		if s = strings.TrimSpace(s); len(s) > 0 {
			res = append(res, s)
		}
	}
	return res
}
