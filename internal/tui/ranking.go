package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/log"
	"github.com/shvbsle/danarun/internal/storage"
)

// rankingPanel lists the persisted top scores.
type rankingPanel struct {
	store  Store
	styles *Styles
	keys   keyMap
	scores storage.HighScores
	// copy writes to the system clipboard; swapped in tests.
	copy func(string) error
}

func newRankingPanel(deps Deps, keys keyMap) *rankingPanel {
	return &rankingPanel{
		store:  deps.Store,
		styles: deps.Styles,
		keys:   keys,
		copy:   clipboard.WriteAll,
	}
}

func (p *rankingPanel) Name() string        { return "ranking" }
func (p *rankingPanel) Description() string { return "Ranking" }
func (p *rankingPanel) Keys() []string      { return []string{"r", "R"} }

func (p *rankingPanel) Open() tea.Cmd {
	p.scores = p.store.HighScores().Top(storage.MaxHighScores)
	return nil
}

func (p *rankingPanel) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Back, p.keys.Quit):
		return true, nil
	case key.Matches(keyMsg, p.keys.Copy):
		return false, p.copyCmd()
	}
	return false, nil
}

func (p *rankingPanel) copyCmd() tea.Cmd {
	if len(p.scores) == 0 {
		return showStatus("no high scores to copy", true)
	}

	text := formatRanking(p.scores)
	return func() tea.Msg {
		if err := p.copy(text); err != nil {
			log.TUI().Error("failed to copy ranking to clipboard", "error", err)
			return statusMsg{message: fmt.Sprintf("failed to copy to clipboard: %v", err), err: true}
		}
		log.TUI().Info("copied ranking to clipboard", "entries", len(p.scores))
		return statusMsg{message: fmt.Sprintf("Copied %d scores to clipboard", len(p.scores))}
	}
}

// formatRanking renders the scores as plain "N. score pts" lines.
func formatRanking(scores storage.HighScores) string {
	var b strings.Builder
	for i, s := range scores {
		fmt.Fprintf(&b, "%d. %d pts\n", i+1, int(s))
	}
	return b.String()
}

func (p *rankingPanel) View(width int) string {
	s := p.styles
	if len(p.scores) == 0 {
		return s.Dim.Render("No high scores yet.") + "\n\n" + s.Dim.Render("esc: close")
	}

	var b strings.Builder
	for i, score := range p.scores {
		rank := s.Label.Render(fmt.Sprintf("%2d.", i+1))
		value := s.Value.Render(fmt.Sprintf("%d pts", int(score)))
		if i == 0 {
			value = s.Accent.Render(fmt.Sprintf("%d pts", int(score)))
		}
		b.WriteString(truncate(rank+" "+value, width) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.Dim.Render("c: copy to clipboard • esc: close"))
	return b.String()
}
