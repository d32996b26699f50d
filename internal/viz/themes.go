package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the panels around the matrix. Off is used for unlit LEDs.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Off    lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Accent: lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#e0e0e0"),
		Muted:  lipgloss.Color("#666688"),
		Off:    lipgloss.Color("#262626"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Accent: lipgloss.Color("#00ff00"),
		Text:   lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Off:    lipgloss.Color("#002200"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemePaper = Theme{
		Name:   "paper",
		Accent: lipgloss.Color("#0055aa"),
		Text:   lipgloss.Color("#222222"),
		Muted:  lipgloss.Color("#888888"),
		Off:    lipgloss.Color("#cccccc"),
		Warn:   lipgloss.Color("#cc4400"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemePaper}
)

// GetTheme returns a theme by name, or the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
