package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/attractors/internal/colormap"
)

// Theme defines the panel colors and the trail gradient.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Trail   colormap.Gradient
}

// Available themes
var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("#00ffaa"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ffaa00"),
		Trail:   colormap.DefaultGradient(),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"), // Magenta
		Accent:  lipgloss.Color("#00ffff"), // Cyan
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
		Trail:   colormap.Gradient{HueStart: 0.83, HueEnd: 0.5, Saturation: 1, Value: 1},
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Trail:   colormap.Gradient{HueStart: 0.33, HueEnd: 0.33, Saturation: 1, Value: 1, Fade: true},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Trail:   colormap.Gradient{HueStart: 0.5, HueEnd: 0.7, Saturation: 0.8, Value: 1},
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"), // Coral
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ffc048"),
		Trail:   colormap.Gradient{HueStart: 0.15, HueEnd: -0.1, Saturation: 0.9, Value: 1},
	}

	// All available themes
	Themes = []Theme{
		ThemeDefault,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default theme.
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

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
