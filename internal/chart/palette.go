package chart

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/askdb-io/askdb/internal/output"
)

// palette holds the per-theme colors: a series palette for bars (cycled
// modulo its size) and a single line color.
type palette struct {
	series []lipgloss.Color
	line   asciigraph.AnsiColor
}

var (
	darkPalette = palette{
		series: []lipgloss.Color{
			lipgloss.Color("39"),  // blue
			lipgloss.Color("208"), // orange
			lipgloss.Color("41"),  // green
			lipgloss.Color("213"), // pink
			lipgloss.Color("227"), // yellow
			lipgloss.Color("51"),  // cyan
		},
		line: asciigraph.Cyan,
	}

	lightPalette = palette{
		series: []lipgloss.Color{
			lipgloss.Color("25"),  // deep blue
			lipgloss.Color("130"), // brown-orange
			lipgloss.Color("28"),  // dark green
			lipgloss.Color("90"),  // purple
			lipgloss.Color("94"),  // olive
			lipgloss.Color("30"),  // teal
		},
		line: asciigraph.Blue,
	}
)

func paletteFor(theme output.Theme) palette {
	if theme == output.ThemeLight {
		return lightPalette
	}
	return darkPalette
}
