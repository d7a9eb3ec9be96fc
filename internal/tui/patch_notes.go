package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// patchNotes are the release notes. The first line is the version.
const patchNotes = `0.5.5V
Added double jump
Added bird obstacles
Added music and track selection
Added fine-grained music volume control
Other bug fixes`

// patchNotesPanel shows the release notes in a scrollable viewport.
type patchNotesPanel struct {
	styles   *Styles
	keys     keyMap
	viewport viewport.Model
}

func newPatchNotesPanel(deps Deps, keys keyMap) *patchNotesPanel {
	return &patchNotesPanel{
		styles:   deps.Styles,
		keys:     keys,
		viewport: viewport.New(60, 8),
	}
}

func (p *patchNotesPanel) Name() string        { return "patch-notes" }
func (p *patchNotesPanel) Description() string { return "Patch Notes" }
func (p *patchNotesPanel) Keys() []string      { return []string{"n", "N"} }

func (p *patchNotesPanel) Open() tea.Cmd {
	p.viewport.SetContent(p.render())
	p.viewport.GotoTop()
	return nil
}

func (p *patchNotesPanel) render() string {
	lines := strings.Split(patchNotes, "\n")
	var b strings.Builder
	b.WriteString(p.styles.Accent.Render("v"+lines[0]) + "\n\n")
	for _, l := range lines[1:] {
		b.WriteString(p.styles.Value.Render("• "+l) + "\n")
	}
	return b.String()
}

func (p *patchNotesPanel) Update(msg tea.Msg) (bool, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, p.keys.Back, p.keys.Quit) {
		return true, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return false, cmd
}

func (p *patchNotesPanel) View(width int) string {
	if p.viewport.Width != width {
		p.viewport.Width = width
		p.viewport.SetContent(p.render())
	}
	return p.viewport.View() + "\n\n" + p.styles.Dim.Render("↑/↓: scroll • esc: close")
}
