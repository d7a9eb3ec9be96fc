package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/log"
	"github.com/shvbsle/danarun/internal/storage"
)

var themes = []struct {
	name  string
	label string
}{
	{storage.ThemeDark, "Dark"},
	{storage.ThemeLight, "Light"},
}

// themePanel switches between the dark and light themes. The choice is
// persisted and also styles the game screen on the next run.
type themePanel struct {
	store  Store
	styles *Styles
	keys   keyMap
	cursor int
}

func newThemePanel(deps Deps, keys keyMap) *themePanel {
	return &themePanel{
		store:  deps.Store,
		styles: deps.Styles,
		keys:   keys,
	}
}

func (p *themePanel) Name() string        { return "theme" }
func (p *themePanel) Description() string { return "Theme" }
func (p *themePanel) Keys() []string      { return []string{"t", "T"} }

func (p *themePanel) Open() tea.Cmd {
	p.cursor = 0
	for i, t := range themes {
		if t.name == p.store.Theme() {
			p.cursor = i
		}
	}
	return nil
}

func (p *themePanel) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Back, p.keys.Quit):
		return true, nil
	case key.Matches(keyMsg, p.keys.Up, p.keys.Left):
		p.cursor = (p.cursor - 1 + len(themes)) % len(themes)
	case key.Matches(keyMsg, p.keys.Down, p.keys.Right):
		p.cursor = (p.cursor + 1) % len(themes)
	case key.Matches(keyMsg, p.keys.Select):
		return true, p.apply(themes[p.cursor].name)
	}
	return false, nil
}

func (p *themePanel) apply(theme string) tea.Cmd {
	if err := p.store.SetTheme(theme); err != nil {
		log.TUI().Warn("could not save theme", "theme", theme, "error", err)
		return showStatus("could not save theme: "+err.Error(), true)
	}
	return tea.Batch(
		func() tea.Msg { return themeChangedMsg{theme: theme} },
		showStatus("Theme saved", false),
	)
}

func (p *themePanel) View(width int) string {
	s := p.styles
	var rows []string
	for i, t := range themes {
		text := t.label
		if t.name == p.store.Theme() {
			text += " (current)"
		}
		if i == p.cursor {
			rows = append(rows, truncate(s.Selected.Render("> "+text), width))
		} else {
			rows = append(rows, truncate(s.Item.Render("  "+text), width))
		}
	}
	rows = append(rows, "", s.Dim.Render("enter: apply • esc: close"))
	return strings.Join(rows, "\n")
}
