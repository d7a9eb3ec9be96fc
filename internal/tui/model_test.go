package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/shvbsle/danarun/internal/config"
	"github.com/shvbsle/danarun/internal/storage"
)

type fakeSound struct {
	track  int
	volume int
}

func (f *fakeSound) Track() int        { return f.track }
func (f *fakeSound) SelectTrack(i int) { f.track = i }
func (f *fakeSound) SetVolume(v int)   { f.volume = v }

func newTestDeps(t *testing.T) (Deps, *fakeSound, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "danarun.conf")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	store := storage.NewMemory()
	sound := &fakeSound{volume: cfg.MasterVolume}
	return Deps{Config: cfg, Store: store, Sound: sound, Styles: NewStyles(store.Theme())}, sound, path
}

func newTestModel(t *testing.T) (Model, Deps, *fakeSound, string) {
	t.Helper()
	deps, sound, path := newTestDeps(t)
	m := New(deps, DefaultPanels(deps))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), deps, sound, path
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestVersionIsFirstPatchNotesLine(t *testing.T) {
	if Version != "0.5.5V" {
		t.Errorf("Expected version 0.5.5V, got %q", Version)
	}
}

func TestPlayQuitsToLaunchGame(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, cmd := send(t, m, space)
	if !m.LaunchGame() {
		t.Error("Expected space to launch the game")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}

func TestQuitDoesNotLaunchGame(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, cmd := send(t, m, runes("q"))
	if m.LaunchGame() {
		t.Error("Expected q not to launch the game")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}

func TestMenuNavigation(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	if len(m.menu) != 7 {
		t.Fatalf("Expected Play, 5 panels and Quit, got %d entries", len(m.menu))
	}

	m, _ = send(t, m, up)
	if m.menu[m.cursor].action != actionQuit {
		t.Errorf("Expected up from the top to wrap to Quit, got %q", m.menu[m.cursor].label)
	}

	m, _ = send(t, m, down, down, enter)
	if m.active == nil || m.active.Name() != "ranking" {
		t.Fatalf("Expected enter on the second entry to open the ranking")
	}
	if !strings.Contains(m.View(), "No high scores yet.") {
		t.Error("Expected the empty ranking message")
	}

	m, _ = send(t, m, esc)
	if m.active != nil {
		t.Error("Expected esc to close the panel")
	}
}

func TestHotkeysOpenPanels(t *testing.T) {
	tests := []struct {
		key   string
		panel string
	}{
		{"r", "ranking"},
		{"M", "music"},
		{"s", "settings"},
		{"t", "theme"},
		{"n", "patch-notes"},
	}

	for _, tt := range tests {
		t.Run(tt.panel, func(t *testing.T) {
			m, _, _, _ := newTestModel(t)
			m, _ = send(t, m, runes(tt.key))
			if m.active == nil || m.active.Name() != tt.panel {
				t.Errorf("Expected %q to open %s", tt.key, tt.panel)
			}
		})
	}
}

func TestHelpModalToggle(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, _ = send(t, m, runes("?"))
	if !m.helpModal.IsVisible() {
		t.Fatal("Expected ? to show help")
	}
	if !strings.Contains(m.BuildHelpContent(), "Time stop") {
		t.Error("Expected the in-game controls in the help")
	}

	m, _ = send(t, m, esc)
	if m.helpModal.IsVisible() {
		t.Error("Expected esc to hide help")
	}
}

func TestRankingCopiesToClipboard(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	store := deps.Store.(*storage.Store)
	for _, s := range []float64{100, 500} {
		if _, err := store.SaveHighScore(s); err != nil {
			t.Fatal(err)
		}
	}

	p := newRankingPanel(deps, newKeyMap())
	var copied string
	p.copy = func(s string) error {
		copied = s
		return nil
	}
	p.Open()

	_, cmd := p.Update(runes("c"))
	if cmd == nil {
		t.Fatal("Expected a copy command")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || msg.err {
		t.Fatalf("Expected a success status, got %#v", msg)
	}
	if copied != "1. 500 pts\n2. 100 pts\n" {
		t.Errorf("Expected ranked lines on the clipboard, got %q", copied)
	}
}

func TestRankingCopyFailures(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	p := newRankingPanel(deps, newKeyMap())
	p.copy = func(string) error { return errors.New("no clipboard") }

	p.Open()
	_, cmd := p.Update(runes("c"))
	if msg := cmd().(statusMsg); !msg.err {
		t.Error("Expected an error status with nothing to copy")
	}

	if _, err := deps.Store.(*storage.Store).SaveHighScore(42); err != nil {
		t.Fatal(err)
	}
	p.Open()
	_, cmd = p.Update(runes("c"))
	if msg := cmd().(statusMsg); !msg.err || !strings.Contains(msg.message, "no clipboard") {
		t.Errorf("Expected the clipboard error, got %#v", msg)
	}
}

func TestMusicSelectionIsSaved(t *testing.T) {
	deps, sound, path := newTestDeps(t)
	p := newMusicPanel(deps, newKeyMap())
	p.Open()

	p.Update(down)
	done, cmd := p.Update(enter)
	if !done || cmd == nil {
		t.Fatal("Expected enter to pick the track and close")
	}
	if sound.track != 1 {
		t.Errorf("Expected track 1 selected, got %d", sound.track)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BGMTrack != 1 {
		t.Errorf("Expected bgm_track=1 saved, got %d", cfg.BGMTrack)
	}
	if !strings.Contains(p.View(60), "A Hat in Time") {
		t.Error("Expected track titles in the list")
	}
}

func TestSettingsAdjustAndSave(t *testing.T) {
	deps, sound, path := newTestDeps(t)
	p := newSettingsPanel(deps, newKeyMap())
	p.Open()

	p.Update(right)
	p.Update(right)
	if deps.Config.TargetFPS != 120 {
		t.Errorf("Expected FPS to stop at 120, got %d", deps.Config.TargetFPS)
	}

	p.Update(down)
	p.Update(left)
	if deps.Config.MasterVolume != config.DefaultMasterVolume-volumeStep || sound.volume != deps.Config.MasterVolume {
		t.Errorf("Expected volume %d applied, got config %d sound %d",
			config.DefaultMasterVolume-volumeStep, deps.Config.MasterVolume, sound.volume)
	}

	done, cmd := p.Update(esc)
	if !done || cmd == nil {
		t.Fatal("Expected esc to save and close")
	}
	if msg := cmd().(statusMsg); msg.err {
		t.Errorf("Expected settings to save, got %q", msg.message)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TargetFPS != 120 || cfg.MasterVolume != config.DefaultMasterVolume-volumeStep {
		t.Errorf("Expected saved settings, got %s", cfg)
	}
}

func TestStepFPS(t *testing.T) {
	tests := []struct {
		fps, dir, want int
	}{
		{30, -1, 30},
		{30, 1, 60},
		{60, 1, 120},
		{120, 1, 120},
		{120, -1, 60},
		{45, 1, config.DefaultTargetFPS},
	}

	for _, tt := range tests {
		if got := stepFPS(tt.fps, tt.dir); got != tt.want {
			t.Errorf("stepFPS(%d, %d): expected %d, got %d", tt.fps, tt.dir, tt.want, got)
		}
	}
}

func TestThemeSwitchRestyles(t *testing.T) {
	m, deps, _, _ := newTestModel(t)

	m, _ = send(t, m, runes("t"), down)
	_, cmd := send(t, m, enter)
	if cmd == nil {
		t.Fatal("Expected a theme command")
	}
	if got := deps.Store.Theme(); got != storage.ThemeLight {
		t.Fatalf("Expected light theme persisted, got %q", got)
	}

	m, _ = send(t, m, themeChangedMsg{theme: storage.ThemeLight})
	if m.styles.Theme != storage.ThemeLight || deps.Styles.Theme != storage.ThemeLight {
		t.Error("Expected the shared styles to switch to light")
	}
}

func TestNewStylesFallsBackToDark(t *testing.T) {
	if NewStyles("neon").Theme != storage.ThemeDark {
		t.Error("Expected unknown themes to fall back to dark")
	}
}

func TestStatusMessageClears(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	m, cmd := send(t, m, statusMsg{message: "Settings saved"})
	if cmd == nil || !strings.Contains(m.View(), "✓ Settings saved") {
		t.Error("Expected the status line with a clear timer")
	}

	m, _ = send(t, m, clearStatusMsg{})
	if strings.Contains(m.View(), "Settings saved") {
		t.Error("Expected the status line cleared")
	}
}

func TestViewFitsWidth(t *testing.T) {
	m, _, _, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 24, Height: 30}, runes("n"))

	for _, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 24 {
			t.Errorf("Expected lines within 24 cells, got %d: %q", w, line)
		}
	}
}

func TestDetectEasterEgg(t *testing.T) {
	tests := []struct {
		env  string
		date time.Time
		want EasterEggMode
	}{
		{"", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), EasterEggNone},
		{"", time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC), EasterEggHalloween},
		{"", time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC), EasterEggChristmas},
		{"xmas", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), EasterEggChristmas},
		{"HALLOWEEN", time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC), EasterEggHalloween},
	}

	for _, tt := range tests {
		t.Setenv("EASTER_EGG", tt.env)
		if got := detectEasterEgg(tt.date); got != tt.want {
			t.Errorf("env %q on %s: expected %d, got %d", tt.env, tt.date.Format("Jan 2"), tt.want, got)
		}
	}
}
