package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/shvbsle/danarun/internal/audio"
	"github.com/shvbsle/danarun/internal/config"
	"github.com/shvbsle/danarun/internal/log"
)

// musicPanel picks the background track.
type musicPanel struct {
	config *config.Config
	sound  Sound
	styles *Styles
	keys   keyMap
	cursor int
}

func newMusicPanel(deps Deps, keys keyMap) *musicPanel {
	return &musicPanel{
		config: deps.Config,
		sound:  deps.Sound,
		styles: deps.Styles,
		keys:   keys,
	}
}

func (p *musicPanel) Name() string        { return "music" }
func (p *musicPanel) Description() string { return "Music" }
func (p *musicPanel) Keys() []string      { return []string{"m", "M"} }

func (p *musicPanel) Open() tea.Cmd {
	p.cursor = p.current()
	return nil
}

func (p *musicPanel) current() int {
	n := len(audio.Tracks)
	return ((p.sound.Track() % n) + n) % n
}

func (p *musicPanel) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}

	n := len(audio.Tracks)
	switch {
	case key.Matches(keyMsg, p.keys.Back, p.keys.Quit):
		return true, nil
	case key.Matches(keyMsg, p.keys.Up):
		p.cursor = (p.cursor - 1 + n) % n
	case key.Matches(keyMsg, p.keys.Down):
		p.cursor = (p.cursor + 1) % n
	case key.Matches(keyMsg, p.keys.Select):
		return true, p.selectTrack(p.cursor)
	}
	return false, nil
}

func (p *musicPanel) selectTrack(i int) tea.Cmd {
	track := audio.TrackAt(i)
	p.sound.SelectTrack(i)
	p.config.BGMTrack = i
	log.TUI().Info("music selected", "track", track.Title)

	if err := p.config.Save(); err != nil {
		log.TUI().Warn("could not save music choice", "error", err)
		return showStatus("could not save settings: "+err.Error(), true)
	}
	return showStatus("Now playing: "+track.Title, false)
}

func (p *musicPanel) View(width int) string {
	s := p.styles

	titleWidth := 0
	for _, t := range audio.Tracks {
		titleWidth = max(titleWidth, runewidth.StringWidth(t.Title))
	}

	playing := p.current()
	var rows []string
	for i, t := range audio.Tracks {
		text := padRight(t.Title, titleWidth+2)
		if i == playing {
			text += "♪"
		}
		if i == p.cursor {
			rows = append(rows, truncate(s.Selected.Render("> "+text), width))
		} else {
			rows = append(rows, truncate(s.Item.Render("  "+text), width))
		}
	}
	rows = append(rows, "", s.Dim.Render("enter: play • esc: close"))
	return strings.Join(rows, "\n")
}
