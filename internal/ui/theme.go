package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named lipgloss palette. The reading view stays plain text; only
// the chrome (status bars, controls, accents) is colored.
type Theme struct {
	Name    string
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

var themes = map[string]Theme{
	"light": {
		Name:    "light",
		Text:    lipgloss.Color("#11181C"),
		Muted:   lipgloss.Color("#687076"),
		Accent:  lipgloss.Color("#0a7ea4"),
		Warning: lipgloss.Color("#B45309"),
	},
	"dark": {
		Name:    "dark",
		Text:    lipgloss.Color("#ECEDEE"),
		Muted:   lipgloss.Color("#9BA1A6"),
		Accent:  lipgloss.Color("#4FC3F7"),
		Warning: lipgloss.Color("#FFAA00"),
	},
}

// themeByName returns the named theme, defaulting to dark.
func themeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["dark"]
}

// highlightColors maps the palette names stored on marks to terminal colors
// for swatch rendering.
var highlightColors = map[string]lipgloss.Color{
	"yellow": lipgloss.Color("#FFD54F"),
	"green":  lipgloss.Color("#81C784"),
	"blue":   lipgloss.Color("#64B5F6"),
	"pink":   lipgloss.Color("#F06292"),
	"purple": lipgloss.Color("#BA68C8"),
}

type styles struct {
	status   lipgloss.Style
	controls lipgloss.Style
	title    lipgloss.Style
	page     lipgloss.Style
	marked   lipgloss.Style
	warning  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		status:   lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		controls: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		title:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		page:     lipgloss.NewStyle().Foreground(t.Text).Padding(1, 2),
		marked:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		warning:  lipgloss.NewStyle().Foreground(t.Warning),
	}
}
