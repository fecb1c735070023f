package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles is the lipgloss style set for one theme.
type Styles struct {
	Title     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style
	SQL       lipgloss.Style
	CardBox   lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) *Styles {
	var (
		accent lipgloss.Color
		muted  lipgloss.Color
		value  lipgloss.Color
	)
	if theme == ThemeLight {
		accent = lipgloss.Color("25") // deep blue
		muted = lipgloss.Color("243")
		value = lipgloss.Color("235")
	} else {
		accent = lipgloss.Color("39") // bright blue
		muted = lipgloss.Color("245")
		value = lipgloss.Color("255")
	}

	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		SQL:     lipgloss.NewStyle().Foreground(accent),
		CardBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Margin(0, 1, 0, 0).
			Align(lipgloss.Center),
		CardLabel: lipgloss.NewStyle().Foreground(muted),
		CardValue: lipgloss.NewStyle().Bold(true).Foreground(value),
	}
}
