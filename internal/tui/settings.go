package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/config"
	"github.com/shvbsle/danarun/internal/log"
)

// volumeStep is how much one ←/→ press moves the volume.
const volumeStep = 5

const (
	settingFPS = iota
	settingVolume
	settingCount
)

// settingsPanel edits the frame rate and the master volume. Changes apply
// at once and are saved when the panel closes.
type settingsPanel struct {
	config *config.Config
	sound  Sound
	styles *Styles
	keys   keyMap
	bar    progress.Model
	row    int
	dirty  bool
}

func newSettingsPanel(deps Deps, keys keyMap) *settingsPanel {
	return &settingsPanel{
		config: deps.Config,
		sound:  deps.Sound,
		styles: deps.Styles,
		keys:   keys,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

func (p *settingsPanel) Name() string        { return "settings" }
func (p *settingsPanel) Description() string { return "Settings" }
func (p *settingsPanel) Keys() []string      { return []string{"s", "S"} }

func (p *settingsPanel) Open() tea.Cmd {
	p.row = settingFPS
	p.dirty = false
	return nil
}

func (p *settingsPanel) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.Back, p.keys.Quit, p.keys.Select):
		return true, p.save()
	case key.Matches(keyMsg, p.keys.Up):
		p.row = (p.row - 1 + settingCount) % settingCount
	case key.Matches(keyMsg, p.keys.Down):
		p.row = (p.row + 1) % settingCount
	case key.Matches(keyMsg, p.keys.Left):
		p.adjust(-1)
	case key.Matches(keyMsg, p.keys.Right):
		p.adjust(1)
	}
	return false, nil
}

func (p *settingsPanel) adjust(dir int) {
	switch p.row {
	case settingFPS:
		p.config.TargetFPS = stepFPS(p.config.TargetFPS, dir)
		log.TUI().Debug("frame rate changed", "fps", p.config.TargetFPS)
	case settingVolume:
		p.config.SetVolume(p.config.MasterVolume + dir*volumeStep)
		p.sound.SetVolume(p.config.MasterVolume)
	}
	p.dirty = true
}

// stepFPS moves to the neighbouring supported rate, stopping at the ends.
func stepFPS(fps, dir int) int {
	idx := -1
	for i, f := range config.SupportedFPS {
		if f == fps {
			idx = i
		}
	}
	if idx < 0 {
		return config.DefaultTargetFPS
	}
	idx = max(0, min(len(config.SupportedFPS)-1, idx+dir))
	return config.SupportedFPS[idx]
}

func (p *settingsPanel) save() tea.Cmd {
	if !p.dirty {
		return nil
	}
	if err := p.config.Save(); err != nil {
		log.TUI().Warn("could not save settings", "error", err)
		return showStatus("could not save settings: "+err.Error(), true)
	}
	log.TUI().Info("settings saved", "fps", p.config.TargetFPS, "volume", p.config.MasterVolume)
	return showStatus("Settings saved", false)
}

func (p *settingsPanel) View(width int) string {
	s := p.styles

	var fps []string
	for _, f := range config.SupportedFPS {
		label := fmt.Sprintf(" %d ", f)
		if f == p.config.TargetFPS {
			fps = append(fps, s.Selected.PaddingLeft(0).Render(label))
		} else {
			fps = append(fps, s.Value.Render(label))
		}
	}

	p.bar.Width = max(min(width-20, 30), 10)
	volume := p.bar.ViewAs(float64(p.config.MasterVolume)/100) +
		s.Value.Render(fmt.Sprintf(" %3d", p.config.MasterVolume))

	label := s.Label.Width(12)
	cursor := func(row int) string {
		if row == p.row {
			return s.Accent.Render("> ")
		}
		return "  "
	}

	rows := []string{
		truncate(cursor(settingFPS)+label.Render("Frame rate")+strings.Join(fps, " "), width),
		truncate(cursor(settingVolume)+label.Render("Volume")+volume, width),
		"",
		s.Dim.Render("←/→: change • esc: save and close"),
	}
	return strings.Join(rows, "\n")
}
