// Package tui is the launcher shown before and between runs: a menu with
// the play entry and the modal panels (ranking, music, settings, theme and
// patch notes).
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/config"
	"github.com/shvbsle/danarun/internal/log"
	"github.com/shvbsle/danarun/internal/panels"
	"github.com/shvbsle/danarun/internal/storage"
)

// Version is the first line of the patch notes.
var Version = strings.SplitN(patchNotes, "\n", 2)[0]

// statusTimeout is how long a status line stays up.
const statusTimeout = 5 * time.Second

// Store is the persisted state the launcher reads and changes.
type Store interface {
	HighScores() storage.HighScores
	Coins() int
	Theme() string
	SetTheme(theme string) error
}

// Sound is the part of the sound manager the launcher drives.
type Sound interface {
	Track() int
	SelectTrack(i int)
	SetVolume(v int)
}

// Deps are shared by the launcher and its built-in panels.
type Deps struct {
	Config *config.Config
	Store  Store
	Sound  Sound
	Styles *Styles
}

type menuAction int

const (
	actionPlay menuAction = iota
	actionPanel
	actionQuit
)

type menuItem struct {
	label  string
	hint   string
	action menuAction
	panel  panels.Panel
}

// Model is the launcher's bubbletea model.
type Model struct {
	config    *config.Config
	store     Store
	registry  *panels.Registry
	styles    *Styles
	keys      keyMap
	help      help.Model
	helpModal *HelpModal
	menu      []menuItem
	cursor    int
	active    panels.Panel
	easterEgg EasterEggMode

	launchGame bool
	width      int
	height     int
	status     string
	statusErr  bool
}

type statusMsg struct {
	message string
	err     bool
}

type clearStatusMsg struct{}

type themeChangedMsg struct {
	theme string
}

func showStatus(message string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message: message, err: err}
	}
}

// New creates the launcher. The registry's panels become menu entries
// between Play and Quit, in registration order.
func New(deps Deps, registry *panels.Registry) Model {
	if deps.Styles == nil {
		deps.Styles = NewStyles(deps.Store.Theme())
	}

	menu := []menuItem{{label: "Play", hint: "space", action: actionPlay}}
	for _, p := range registry.List() {
		menu = append(menu, menuItem{
			label:  p.Description(),
			hint:   strings.Join(p.Keys(), "/"),
			action: actionPanel,
			panel:  p,
		})
	}
	menu = append(menu, menuItem{label: "Quit", hint: "q", action: actionQuit})

	m := Model{
		config:    deps.Config,
		store:     deps.Store,
		registry:  registry,
		styles:    deps.Styles,
		keys:      newKeyMap(),
		help:      help.New(),
		helpModal: NewHelpModal(),
		menu:      menu,
		easterEgg: detectEasterEgg(time.Now()),
	}
	m.applyHelpStyles()
	return m
}

func (m *Model) applyHelpStyles() {
	s := m.styles
	m.help.Styles.ShortKey = s.helpKey
	m.help.Styles.ShortDesc = s.helpDesc
	m.help.Styles.ShortSeparator = s.helpSep
	m.help.Styles.FullKey = s.helpKey
	m.help.Styles.FullDesc = s.helpDesc
	m.help.Styles.FullSeparator = s.helpSep
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// LaunchGame reports whether the launcher quit to start a run.
func (m Model) LaunchGame() bool {
	return m.launchGame
}

// Update handles messages and updates the model state accordingly.
// It implements the tea.Model interface for Bubble Tea.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.helpModal.SetSize(msg.Width, msg.Height)
		return m, nil

	case statusMsg:
		m.status = msg.message
		m.statusErr = msg.err
		return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case themeChangedMsg:
		*m.styles = *NewStyles(msg.theme)
		m.applyHelpStyles()
		log.TUI().Info("theme changed", "theme", msg.theme)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.helpModal.IsVisible() {
			return m.updateHelpModal(msg)
		}
		if m.active != nil {
			return m.updatePanel(msg)
		}
		return m.updateMenu(msg)
	}

	if m.active != nil {
		return m.updatePanel(msg)
	}
	return m, nil
}

func (m Model) updateHelpModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help, m.keys.Back) {
		m.helpModal.Hide()
		return m, nil
	}
	var cmd tea.Cmd
	m.helpModal, cmd = m.helpModal.Update(msg)
	return m, cmd
}

func (m Model) updatePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, cmd := m.active.Update(msg)
	if done {
		log.TUI().Debug("panel closed", "panel", m.active.Name())
		m.active = nil
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.menu)) % len(m.menu)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.menu)
		return m, nil
	case key.Matches(msg, m.keys.Play):
		return m.play()
	case key.Matches(msg, m.keys.Select):
		return m.activate(m.menu[m.cursor])
	case key.Matches(msg, m.keys.Help):
		m.helpModal.SetContent(m.BuildHelpContent())
		m.helpModal.Toggle()
		return m, nil
	}

	if p, ok := m.registry.GetByKey(msg.String()); ok {
		return m.open(p)
	}
	return m, nil
}

func (m Model) activate(item menuItem) (tea.Model, tea.Cmd) {
	switch item.action {
	case actionPlay:
		return m.play()
	case actionPanel:
		return m.open(item.panel)
	default:
		return m, tea.Quit
	}
}

func (m Model) play() (tea.Model, tea.Cmd) {
	log.TUI().Info("launching game")
	m.launchGame = true
	return m, tea.Quit
}

func (m Model) open(p panels.Panel) (tea.Model, tea.Cmd) {
	log.TUI().Debug("panel opened", "panel", p.Name())
	m.active = p
	return m, p.Open()
}

// View renders the launcher.
func (m Model) View() string {
	if m.helpModal.IsVisible() {
		return m.helpModal.View(m.styles)
	}

	s := m.styles
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(renderLogo(s.Logo, m.easterEgg))
	b.WriteString("\n")
	b.WriteString(s.Dim.Render("v" + Version))
	b.WriteString("\n\n")

	best := 0
	if top := m.store.HighScores().Top(1); len(top) > 0 {
		best = int(top[0])
	}
	b.WriteString(s.Label.Render("High Score: ") + s.Value.Render(fmt.Sprintf("%d", best)))
	b.WriteString("   ")
	b.WriteString(s.Label.Render("Coins: ") + s.Accent.Render(fmt.Sprintf("%d", m.store.Coins())))
	b.WriteString("\n\n")

	if m.active != nil {
		b.WriteString(m.renderPanel())
	} else {
		b.WriteString(m.renderMenu())
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(s.Error.Render("⚠ " + m.status))
		} else {
			b.WriteString(s.Success.Render("✓ " + m.status))
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, l := range lines {
		lines[i] = truncate(l, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderMenu() string {
	s := m.styles
	labelWidth := 0
	for _, item := range m.menu {
		labelWidth = max(labelWidth, len(item.label))
	}

	var rows []string
	for i, item := range m.menu {
		text := padRight(item.label, labelWidth+4) + "[" + item.hint + "]"
		if i == m.cursor {
			rows = append(rows, s.Selected.Render("> "+text))
		} else {
			rows = append(rows, s.Item.Render("  "+text))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderPanel() string {
	s := m.styles
	width := max(min(m.width-4, 70), 30)

	content := s.Title.Render(m.active.Description()) + "\n\n" +
		m.active.View(width-6)

	return s.Border.Width(width).Render(content) + "\n" +
		s.Dim.Italic(true).Render("Esc to close")
}

var _ tea.Model = Model{}
