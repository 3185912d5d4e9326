package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeBrick = Theme{
		Name:    "brick",
		Primary: lipgloss.Color("#d9734e"),
		Accent:  lipgloss.Color("#ffd23f"), // start marker yellow
		Text:    lipgloss.Color("#f2e8dc"),
		Muted:   lipgloss.Color("#7a6a5e"),
		Success: lipgloss.Color("#3fd26b"), // end marker green
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeVine = Theme{
		Name:    "vine",
		Primary: lipgloss.Color("#5fae4a"),
		Accent:  lipgloss.Color("#e6e65c"),
		Text:    lipgloss.Color("#e0f5d8"),
		Muted:   lipgloss.Color("#4a6b40"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	CurrentTheme = ThemeBrick

	Themes = []Theme{
		ThemeBrick,
		ThemeVine,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, or the default for an unknown name.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeBrick
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeBrick
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
