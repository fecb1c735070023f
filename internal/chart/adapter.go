package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/askdb-io/askdb/internal/output"
	"github.com/askdb-io/askdb/internal/result"
)

const (
	graphHeight = 12
	barMaxWidth = 40
)

// Chart is one rendered chart instance. The adapter owns at most one live
// chart at a time; a closed chart can no longer be viewed.
type Chart struct {
	Selection Selection
	body      string
	closed    bool
}

// View returns the rendered chart.
func (c *Chart) View() string {
	if c.closed {
		return ""
	}
	return c.body
}

// Close releases the chart. Subsequent View calls render nothing.
func (c *Chart) Close() { c.closed = true }

// Closed reports whether the chart has been released.
func (c *Chart) Closed() bool { return c.closed }

// Adapter builds charts from result sets. Any previously built chart is
// destroyed before a new one is constructed, so switching axes, type, or
// theme never leaves two live instances.
type Adapter struct {
	theme   output.Theme
	palette palette
	current *Chart
}

// NewAdapter creates an adapter using the given theme's palette.
func NewAdapter(theme output.Theme) *Adapter {
	return &Adapter{theme: theme, palette: paletteFor(theme)}
}

// SetTheme switches palettes, destroying any live chart so the next render
// picks up the new colors.
func (a *Adapter) SetTheme(theme output.Theme) {
	a.theme = theme
	a.palette = paletteFor(theme)
	if a.current != nil {
		a.current.Close()
		a.current = nil
	}
}

// Current returns the live chart, or nil.
func (a *Adapter) Current() *Chart { return a.current }

// Render builds a chart for the selection, tearing down the previous
// instance first.
func (a *Adapter) Render(rows result.Rows, sel Selection) (*Chart, error) {
	if a.current != nil {
		a.current.Close()
		a.current = nil
	}

	if rows.Len() == 0 {
		return nil, errors.New("no results to chart")
	}
	if !contains(rows.Columns, sel.X) {
		return nil, fmt.Errorf("unknown X column %q", sel.X)
	}
	if !contains(YCandidates(rows), sel.Y) {
		return nil, fmt.Errorf("column %q is not numeric", sel.Y)
	}

	var body string
	switch sel.Type {
	case TypeLine:
		body = a.renderLine(rows, sel)
	case TypeBar:
		body = a.renderBar(rows, sel)
	default:
		return nil, fmt.Errorf("unknown chart type %q", sel.Type)
	}

	a.current = &Chart{Selection: sel, body: body}
	return a.current, nil
}

func (a *Adapter) renderLine(rows result.Rows, sel Selection) string {
	values := make([]float64, 0, rows.Len())
	for _, rec := range rows.Records {
		v, _ := result.ToFloat(rec[sel.Y])
		values = append(values, v)
	}

	return asciigraph.Plot(values,
		asciigraph.Height(graphHeight),
		asciigraph.Caption(fmt.Sprintf("%s by %s", sel.Y, sel.X)),
		asciigraph.SeriesColors(a.palette.line),
	)
}

func (a *Adapter) renderBar(rows result.Rows, sel Selection) string {
	maxVal := 0.0
	labelWidth := 0
	for _, rec := range rows.Records {
		if v, _ := result.ToFloat(rec[sel.Y]); v > maxVal {
			maxVal = v
		}
		if l := len(result.PlainValue(rec[sel.X])); l > labelWidth {
			labelWidth = l
		}
	}

	var b strings.Builder
	for i, rec := range rows.Records {
		v, _ := result.ToFloat(rec[sel.Y])
		width := 0
		if maxVal > 0 && v > 0 {
			width = int(v / maxVal * barMaxWidth)
			if width == 0 {
				width = 1
			}
		}

		// Series colors cycle modulo the palette size.
		color := a.palette.series[i%len(a.palette.series)]
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", width))

		fmt.Fprintf(&b, "%-*s %s %s\n",
			labelWidth, result.PlainValue(rec[sel.X]), bar, result.FormatValue(rec[sel.Y]))
	}
	fmt.Fprintf(&b, "%s by %s\n", sel.Y, sel.X)
	return b.String()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
