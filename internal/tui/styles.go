package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/shvbsle/danarun/internal/storage"
)

// Styles holds the launcher's lipgloss styles for one theme. The model and
// its panels share one *Styles, so a theme switch restyles everything.
type Styles struct {
	Theme string

	Logo     lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Dim      lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Key      lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Border   lipgloss.Style

	helpKey  lipgloss.Style
	helpDesc lipgloss.Style
	helpSep  lipgloss.Style
}

type palette struct {
	logo, title, label, value, dim, selFg, selBg, accent, border string
}

var (
	darkColors = palette{
		logo: "205", title: "39", label: "39", value: "252", dim: "241",
		selFg: "229", selBg: "57", accent: "220", border: "39",
	}
	lightColors = palette{
		logo: "161", title: "25", label: "25", value: "235", dim: "245",
		selFg: "255", selBg: "25", accent: "130", border: "25",
	}
)

// NewStyles builds the styles for a storage theme name. Unknown names get
// the dark theme.
func NewStyles(theme string) *Styles {
	c := darkColors
	if theme == storage.ThemeLight {
		c = lightColors
	} else {
		theme = storage.ThemeDark
	}

	return &Styles{
		Theme:    theme,
		Logo:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.logo)).Bold(true),
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.title)).Bold(true).Underline(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.label)),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.value)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.dim)),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.value)).PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(c.selFg)).Background(lipgloss.Color(c.selBg)).PaddingLeft(2),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(c.accent)).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.border)).
			Padding(1, 2),
		helpKey:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.label)),
		helpDesc: lipgloss.NewStyle().Foreground(lipgloss.Color(c.value)),
		helpSep:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.dim)),
	}
}

// truncate cuts a styled line to width cells without breaking escape codes.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// padRight pads plain text to width cells. Wide runes count double.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
