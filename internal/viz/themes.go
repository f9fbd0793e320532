package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortsim/internal/playback"
)

// Theme is a colour scheme for the panels and bars. Colours are #rrggbb so
// the recorder can use them too.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color

	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
	Pivot     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Bar:        lipgloss.Color("#00aaff"),
		Comparing:  lipgloss.Color("#ffff00"),
		Swapping:   lipgloss.Color("#ff0055"),
		Sorted:     lipgloss.Color("#00ff00"),
		Pivot:      lipgloss.Color("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Bar:        lipgloss.Color("#008800"),
		Comparing:  lipgloss.Color("#ffff00"),
		Swapping:   lipgloss.Color("#ff0000"),
		Sorted:     lipgloss.Color("#88ff88"),
		Pivot:      lipgloss.Color("#00ffcc"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Bar:        lipgloss.Color("#aaaaaa"),
		Comparing:  lipgloss.Color("#0088ff"),
		Swapping:   lipgloss.Color("#ff0000"),
		Sorted:     lipgloss.Color("#00ff00"),
		Pivot:      lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Bar:        lipgloss.Color("#00a8cc"),
		Comparing:  lipgloss.Color("#ffd700"),
		Swapping:   lipgloss.Color("#ff4444"),
		Sorted:     lipgloss.Color("#00ff88"),
		Pivot:      lipgloss.Color("#cc66ff"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Bar:        lipgloss.Color("#feca57"),
		Comparing:  lipgloss.Color("#54a0ff"),
		Swapping:   lipgloss.Color("#ff4757"),
		Sorted:     lipgloss.Color("#5fd068"),
		Pivot:      lipgloss.Color("#ff9ff3"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// ThemeNames returns the names of the built-in themes.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// StateColor is the bar colour for an element in state s.
func (t Theme) StateColor(s playback.VisualState) lipgloss.Color {
	switch s {
	case playback.Comparing:
		return t.Comparing
	case playback.Swapping:
		return t.Swapping
	case playback.Sorted:
		return t.Sorted
	case playback.Pivot:
		return t.Pivot
	default:
		return t.Bar
	}
}
