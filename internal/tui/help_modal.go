package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shvbsle/danarun/internal/audio"
	"github.com/shvbsle/danarun/internal/config"
)

// HelpModal represents the help modal state
type HelpModal struct {
	viewport viewport.Model
	visible  bool
	width    int
	height   int
}

// NewHelpModal creates a new help modal
func NewHelpModal() *HelpModal {
	return &HelpModal{
		viewport: viewport.New(80, 20),
	}
}

func (h *HelpModal) IsVisible() bool {
	return h.visible
}

func (h *HelpModal) Toggle() {
	h.visible = !h.visible
}

func (h *HelpModal) Hide() {
	h.visible = false
}

// SetSize sets the modal size based on terminal dimensions
func (h *HelpModal) SetSize(width, height int) {
	h.width = width
	h.height = height
	modalWidth := min(width-4, 80)
	modalHeight := min(height-6, 40)
	h.viewport.Width = max(modalWidth-4, 10) // Account for border
	h.viewport.Height = max(modalHeight-4, 3)
}

// Update handles scrolling input for the help modal
func (h *HelpModal) Update(msg tea.Msg) (*HelpModal, tea.Cmd) {
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h *HelpModal) SetContent(content string) {
	h.viewport.SetContent(content)
}

// View renders the help modal centered on the screen
func (h *HelpModal) View(s *Styles) string {
	if !h.visible {
		return ""
	}

	modalWidth := min(h.width-4, 80)
	modalHeight := min(h.height-6, 40)

	borderStyle := s.Border.
		Width(modalWidth).
		Height(modalHeight)

	content := s.Title.Render("Dana Run Help") + "\n\n" +
		h.viewport.View() + "\n\n" +
		s.Dim.Italic(true).Render("Press ? or Esc to close • ↑/↓ to scroll")

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		borderStyle.Render(content),
	)
}

// BuildHelpContent lists the launcher and in-game controls and the current
// settings.
func (m Model) BuildHelpContent() string {
	var b strings.Builder
	s := m.styles

	keyStyle := s.Key.Width(12)
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(s.Accent.Underline(true).Render(title))
		b.WriteString("\n\n")
	}
	row := func(k, desc string) {
		b.WriteString(keyStyle.Render(k) + s.Value.Render(desc) + "\n")
	}

	section("Launcher")
	row("↑/k ↓/j", "Move through the menu")
	row("Enter", "Open the selected entry")
	row("Space/p", "Play")
	for _, p := range m.registry.List() {
		row(strings.Join(p.Keys(), "/"), p.Description())
	}
	row("?", "Toggle this help")
	row("q/Ctrl+C", "Quit")

	section("In game")
	row("Space", "Jump, press again in the air to double jump")
	row("A", "Toggle acceleration")
	row("S", "Time stop (slow motion, 30s cooldown)")
	row("P", "Shop (start and game over screens)")
	row("B", "Back to the start screen after a game over")
	row("Ctrl+C", "Back to the launcher")

	section("Current Settings")
	label := s.Label.Width(14)
	b.WriteString(label.Render("Frame rate:") + s.Value.Render(fmt.Sprintf("%d FPS", m.config.TargetFPS)) + "\n")
	b.WriteString(label.Render("Volume:") + s.Value.Render(fmt.Sprintf("%d", m.config.MasterVolume)) + "\n")
	b.WriteString(label.Render("Music:") + s.Value.Render(audio.TrackAt(m.config.BGMTrack).Title) + "\n")
	b.WriteString(label.Render("Theme:") + s.Value.Render(s.Theme) + "\n")

	if path, err := config.Path(); err == nil {
		b.WriteString("\n")
		b.WriteString(s.Dim.Render("Config file: " + path))
	}

	return b.String()
}
