// Package arcade is the terminal frontend: it feeds termloop's frame ticks
// and key presses into a game.Loop and draws its snapshots.
package arcade

import (
	"log/slog"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/shvbsle/danarun/internal/game"
	"github.com/shvbsle/danarun/internal/log"
	"github.com/shvbsle/danarun/internal/storage"
)

// Scoreboard is the persisted state shown on screen.
type Scoreboard interface {
	HighScores() storage.HighScores
	Coins() int
}

type Options struct {
	Loop    *game.Loop
	Sprites game.SpriteSource
	Scores  Scoreboard
	Theme   string
	// KeyRelease is how long a held key may go without a repeat before
	// it counts as released.
	KeyRelease time.Duration
	// NowPlaying returns the current song title for the HUD.
	NowPlaying func() string
}

type Arcade struct {
	game    *tl.Game
	ctrl    *controller
	loop    *game.Loop
	logger  *slog.Logger
	options Options
}

func New(opts Options) *Arcade {
	if opts.NowPlaying == nil {
		opts.NowPlaying = func() string { return "" }
	}

	a := &Arcade{
		game:    tl.NewGame(),
		loop:    opts.Loop,
		logger:  log.Game(),
		options: opts,
	}
	a.ctrl = newController(opts, a.game.Screen())
	return a
}

// Run takes over the terminal until Ctrl+C. A session still running at
// that point is ended so its score is kept.
func (a *Arcade) Run() error {
	palette := PaletteFor(a.options.Theme)

	screen := a.game.Screen()
	// Tick faster than the loop's target rate; the loop throttles itself.
	screen.SetFps(float64(2 * a.loop.TargetFPS()))
	a.game.SetEndKey(tl.KeyCtrlC)

	level := tl.NewBaseLevel(tl.Cell{
		Bg: palette.Background,
		Fg: palette.Text,
		Ch: ' ',
	})
	if palette.Stars {
		level.AddEntity(&Stars{background: palette.Background})
	}
	level.AddEntity(a.ctrl)
	screen.SetLevel(level)

	a.logger.Info("arcade started", "theme", a.options.Theme, "target_fps", a.loop.TargetFPS())
	a.game.Start()

	if a.loop.State() == game.StatePlaying {
		if err := a.loop.EndGame(); err != nil {
			return err
		}
	}
	if a.loop.State() == game.StateShop {
		_ = a.loop.CloseShop()
	}
	if a.loop.State() == game.StateGameOver {
		_ = a.loop.BackToStart()
	}
	return nil
}
