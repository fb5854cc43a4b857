package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme defines color scheme for the TUI. Cold and Hot are the ends of the
// speed gradient; Positive and Negative mark charge signs.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Cold     string
	Hot      string
	Positive lipgloss.Color
	Negative lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Primary:  lipgloss.Color("#ff00ff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Cold:     "#00ffff",
		Hot:      "#ff00ff",
		Positive: lipgloss.Color("#ff4466"),
		Negative: lipgloss.Color("#44aaff"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Cold:     "#005500",
		Hot:      "#ccff66",
		Positive: lipgloss.Color("#ccff66"),
		Negative: lipgloss.Color("#00aa00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Cold:     "#0044aa",
		Hot:      "#ffd700",
		Positive: lipgloss.Color("#ff6b6b"),
		Negative: lipgloss.Color("#00a8cc"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Primary:  lipgloss.Color("#ff6b6b"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Cold:     "#5f27cd",
		Hot:      "#feca57",
		Positive: lipgloss.Color("#ff4757"),
		Negative: lipgloss.Color("#48dbfb"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// SpeedColor blends from Cold to Hot in HCL space as frac goes from 0 to 1.
func (t Theme) SpeedColor(frac float64) lipgloss.Color {
	frac = max(0, min(1, frac))
	cold, err := colorful.Hex(t.Cold)
	if err != nil {
		return t.Primary
	}
	hot, err := colorful.Hex(t.Hot)
	if err != nil {
		return t.Primary
	}
	return lipgloss.Color(cold.BlendHcl(hot, frac).Clamped().Hex())
}
