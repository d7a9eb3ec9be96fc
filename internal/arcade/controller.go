package arcade

import (
	"fmt"
	"math"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/shvbsle/danarun/internal/game"
)

// controller is the single level entity that drives the loop: every
// termloop tick becomes one Frame call, and key events become loop input.
type controller struct {
	loop       *game.Loop
	scores     Scoreboard
	nowPlaying func() string
	render     *renderer

	origin time.Time
	jump   heldKey
}

func newController(opts Options, screen canvas) *controller {
	return &controller{
		loop:       opts.Loop,
		scores:     opts.Scores,
		nowPlaying: opts.NowPlaying,
		render: &renderer{
			screen:  screen,
			sprites: opts.Sprites,
			palette: PaletteFor(opts.Theme),
		},
		origin: time.Now(),
		jump:   heldKey{window: opts.KeyRelease},
	}
}

// timestamp converts wall time into the loop's millisecond clock.
func (c *controller) timestamp(now time.Time) float64 {
	return float64(now.Sub(c.origin)) / float64(time.Millisecond)
}

func (c *controller) Tick(event tl.Event) {
	now := time.Now()
	ms := c.timestamp(now)

	if event.Type == tl.EventKey {
		c.handleKey(event, now, ms)
	}
	if c.jump.expire(now) {
		c.loop.ReleaseJump()
	}
	c.loop.Frame(ms)
}

func (c *controller) handleKey(event tl.Event, now time.Time, ms float64) {
	switch c.loop.State() {
	case game.StateStart:
		switch {
		case event.Key == tl.KeySpace:
			c.jump.press(now)
			_ = c.loop.Start(ms)
		case event.Ch == 'p' || event.Ch == 'P':
			_ = c.loop.OpenShop()
		}

	case game.StatePlaying:
		switch {
		case event.Key == tl.KeySpace:
			// Auto-repeat of the press that started the run is not a jump.
			if c.jump.press(now) {
				c.loop.PressJump()
			}
		case event.Ch == 'a' || event.Ch == 'A':
			c.loop.ToggleAcceleration()
		case event.Ch == 's' || event.Ch == 'S':
			c.loop.TriggerTimeStop()
		}

	case game.StateGameOver:
		switch {
		case event.Key == tl.KeySpace:
			// A jump key still held from the crash must not restart.
			if c.jump.press(now) {
				_ = c.loop.Start(ms)
			}
		case event.Ch == 'b' || event.Ch == 'B':
			_ = c.loop.BackToStart()
		case event.Ch == 'p' || event.Ch == 'P':
			_ = c.loop.OpenShop()
		}

	case game.StateShop:
		if event.Key == tl.KeyEsc {
			_ = c.loop.CloseShop()
		}
	}
}

func (c *controller) Draw(screen *tl.Screen) {
	c.render.screen = screen
	c.draw()
}

func (c *controller) draw() {
	snap := c.loop.Snapshot()

	switch snap.State {
	case game.StateStart:
		c.drawTitle()
	case game.StatePlaying:
		c.drawWorld(snap)
		c.drawHUD(snap)
	case game.StateGameOver:
		c.drawWorld(snap)
		c.drawGameOver(snap)
	case game.StateShop:
		c.drawShop()
	}
}

func (c *controller) drawWorld(snap game.Snapshot) {
	r := c.render
	r.ground()
	r.entity(snap.Decoration)
	for _, coin := range snap.Coins {
		r.entity(coin)
	}
	for _, o := range snap.Obstacles {
		r.entity(o)
	}
	r.entity(snap.Player)
}

func (c *controller) bestScore() float64 {
	if top := c.scores.HighScores().Top(1); len(top) > 0 {
		return top[0]
	}
	return 0
}

func (c *controller) drawTitle() {
	r := c.render
	p := r.palette
	_, rows := r.screen.Size()

	y := max(rows/2-len(titleBanner)-2, 0)
	r.block(y, titleBanner, p.Title)
	y += len(titleBanner) + 1

	r.centered(y, "Endless Runner - Jump the obstacles, grab the coins!", p.Text)
	y += 2
	r.centered(y, "Space: Jump (twice for a double jump)", p.Text)
	y++
	r.centered(y, "A: Accelerate   S: Time stop", p.Text)
	y++
	r.centered(y, "P: Shop   Ctrl+C: Back to the launcher", p.Text)
	y += 2
	r.centered(y, fmt.Sprintf("High Score: %d   Coins: %d", int(c.bestScore()), c.scores.Coins()), p.Accent)
	y += 2
	r.centered(y, "Press SPACE to start...", p.Title)
}

func (c *controller) drawHUD(snap game.Snapshot) {
	r := c.render
	p := r.palette

	r.text(2, 1, fmt.Sprintf("Score: %d", int(math.Floor(snap.Score))), p.Text)
	r.text(2, 2, fmt.Sprintf("High Score: %d", int(math.Max(c.bestScore(), math.Floor(snap.Score)))), p.Text)
	r.text(2, 3, fmt.Sprintf("Coins: %d", c.scores.Coins()), p.Kind(game.KindCoin))
	r.text(2, 4, fmt.Sprintf("Difficulty: %.1f", snap.Difficulty), p.Text)

	accel := "off"
	if snap.Accelerating {
		accel = "ON"
	}
	r.text(2, 5, fmt.Sprintf("Accelerate: %s", accel), p.Text)

	switch {
	case snap.TimeStopActive:
		r.text(2, 6, fmt.Sprintf("TIME STOP %.1fs", snap.TimeStopRemaining.Seconds()), p.Accent)
	case snap.TimeStopCooldown > 0:
		r.text(2, 6, fmt.Sprintf("Time stop in %ds", int(math.Ceil(snap.TimeStopCooldown.Seconds()))), p.Text)
	default:
		r.text(2, 6, "Time stop ready", p.Accent)
	}

	if title := c.nowPlaying(); title != "" {
		r.text(2, 8, "♪ "+title, p.Text)
	}
}

func (c *controller) drawGameOver(snap game.Snapshot) {
	r := c.render
	p := r.palette
	_, rows := r.screen.Size()

	y := max(rows/2-8, 0)
	r.centered(y, "GAME OVER!", p.Danger)
	y += 2
	r.centered(y, fmt.Sprintf("Final Score: %d", int(snap.FinalScore)), p.Title)
	y++

	if snap.FinalRank == 1 {
		r.centered(y, "NEW HIGH SCORE!", p.Title)
		y++
	} else if snap.FinalRank > 0 {
		r.centered(y, fmt.Sprintf("Rank: #%d", snap.FinalRank), p.Text)
		y++
	}
	r.centered(y, fmt.Sprintf("Coins this run: %d", snap.CoinsCollected), p.Text)
	y += 2

	if top := c.scores.HighScores().Top(3); len(top) > 0 {
		r.centered(y, "-- HIGH SCORES --", p.Text)
		y++
		for i, s := range top {
			r.centered(y, fmt.Sprintf("#%d: %d pts", i+1, int(s)), p.Text)
			y++
		}
		y++
	}

	r.centered(y, "Press SPACE to restart", p.Text)
	y++
	r.centered(y, "B: Start screen   P: Shop", p.Text)
	y++
	r.centered(y, "Press Ctrl+C to return to the launcher", p.Text)
}

func (c *controller) drawShop() {
	r := c.render
	p := r.palette
	_, rows := r.screen.Size()

	y := max(rows/2-4, 0)
	r.centered(y, "-- SHOP --", p.Title)
	y += 2
	r.centered(y, fmt.Sprintf("Coins: %d", c.scores.Coins()), p.Kind(game.KindCoin))
	y += 2
	r.centered(y, "Nothing for sale yet. Keep collecting!", p.Text)
	y += 2
	r.centered(y, "Esc: Close", p.Text)
}
