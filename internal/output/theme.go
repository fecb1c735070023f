package output

import (
	"github.com/muesli/termenv"
)

// Theme is the persisted color scheme flag.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DetectTheme infers a theme from the terminal background, defaulting to
// dark when detection is unavailable.
func DetectTheme() Theme {
	if !termenv.HasDarkBackground() {
		return ThemeLight
	}
	return ThemeDark
}
