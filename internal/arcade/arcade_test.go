package arcade

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/shvbsle/danarun/internal/assets"
	"github.com/shvbsle/danarun/internal/game"
	"github.com/shvbsle/danarun/internal/storage"
)

type fakeCanvas struct {
	cols, rows int
	cells      map[[2]int]tl.Cell
}

func newFakeCanvas(cols, rows int) *fakeCanvas {
	return &fakeCanvas{cols: cols, rows: rows, cells: make(map[[2]int]tl.Cell)}
}

func (f *fakeCanvas) RenderCell(x, y int, c *tl.Cell) {
	f.cells[[2]int{x, y}] = *c
}

func (f *fakeCanvas) Size() (int, int) { return f.cols, f.rows }

// row returns the runes drawn on line y, blanks where nothing was drawn.
func (f *fakeCanvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < f.cols; x++ {
		if c, ok := f.cells[[2]int{x, y}]; ok && c.Ch != 0 {
			b.WriteRune(c.Ch)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func (f *fakeCanvas) contains(s string) bool {
	for y := 0; y < f.rows; y++ {
		if strings.Contains(f.row(y), s) {
			return true
		}
	}
	return false
}

type spriteMap map[string]*assets.Sprite

func (m spriteMap) Sprite(name string) (*assets.Sprite, bool) {
	s, ok := m[name]
	return s, ok
}

func TestViewportCellRect(t *testing.T) {
	v := viewport{cols: 120, rows: 30}

	x0, y0, x1, y1 := v.cellRect(game.PlayerX, game.PlayerFloorY, game.PlayerWidth, game.PlayerHeight)
	if x0 != 30 || x1 != 35 || y0 != 27 || y1 != 30 {
		t.Errorf("Expected player cells [30,35)x[27,30), got [%d,%d)x[%d,%d)", x0, x1, y0, y1)
	}

	// Anything smaller than a cell still covers one.
	x0, y0, x1, y1 = v.cellRect(0, 0, 1, 1)
	if x1-x0 != 1 || y1-y0 != 1 {
		t.Errorf("Expected a one-cell minimum, got %dx%d", x1-x0, y1-y0)
	}
}

func TestRendererEntityUsesSpriteGlyphs(t *testing.T) {
	c := newFakeCanvas(120, 30)
	art, err := assets.ParseArt(assets.Coin, strings.NewReader("ab\nc \n"))
	if err != nil {
		t.Fatal(err)
	}
	r := &renderer{screen: c, sprites: spriteMap{assets.Coin: art}, palette: darkPalette}

	// A 20x40 world box is exactly 2x2 cells at this size.
	e := game.Entity{Kind: game.KindCoin, X: 100, Y: 100, Width: 20, Height: 40}
	r.entity(e)

	want := map[[2]int]rune{{10, 5}: 'a', {11, 5}: 'b', {10, 6}: 'c'}
	for pos, ch := range want {
		if got := c.cells[pos].Ch; got != ch {
			t.Errorf("cell %v: expected %q, got %q", pos, ch, got)
		}
	}
	if _, drawn := c.cells[[2]int{11, 6}]; drawn {
		t.Error("Expected transparent pixel to leave the cell alone")
	}
	if c.cells[[2]int{10, 5}].Fg != darkPalette.Kind(game.KindCoin) {
		t.Error("Expected coin colour")
	}
}

func TestRendererEntityPlaceholderAndClipping(t *testing.T) {
	c := newFakeCanvas(120, 30)
	r := &renderer{screen: c, palette: darkPalette}

	// Half off the left edge.
	r.entity(game.Entity{Kind: game.KindGround, X: -10, Y: 0, Width: 20, Height: 20})

	if got := c.cells[[2]int{0, 0}].Ch; got != placeholderGlyph {
		t.Errorf("Expected placeholder for a missing sprite, got %q", got)
	}
	for pos := range c.cells {
		if pos[0] < 0 || pos[1] < 0 {
			t.Fatalf("Expected clipping, got a cell at %v", pos)
		}
	}
}

func TestRendererTextWideRunes(t *testing.T) {
	c := newFakeCanvas(40, 3)
	r := &renderer{screen: c, palette: darkPalette}

	r.text(0, 0, "ウワ!", darkPalette.Text)

	if c.cells[[2]int{0, 0}].Ch != 'ウ' || c.cells[[2]int{2, 0}].Ch != 'ワ' || c.cells[[2]int{4, 0}].Ch != '!' {
		t.Errorf("Expected wide runes to take two cells, got %q", c.row(0))
	}

	r.centered(1, "ab", darkPalette.Text)
	if c.cells[[2]int{19, 1}].Ch != 'a' {
		t.Errorf("Expected centred text at column 19, got %q", c.row(1))
	}
}

func TestHeldKeySynthesizesRelease(t *testing.T) {
	k := heldKey{window: 60 * time.Millisecond}
	t0 := time.Unix(0, 0)

	if !k.press(t0) {
		t.Error("Expected first press to be fresh")
	}
	if k.press(t0.Add(30 * time.Millisecond)) {
		t.Error("Expected a repeat inside the window not to be fresh")
	}
	if k.expire(t0.Add(80 * time.Millisecond)) {
		t.Error("Expected the repeat to extend the window")
	}
	if !k.expire(t0.Add(95 * time.Millisecond)) {
		t.Error("Expected release once the window passed without repeats")
	}
	if k.expire(t0.Add(time.Second)) {
		t.Error("Expected release to be reported once")
	}
	if !k.press(t0.Add(2 * time.Second)) {
		t.Error("Expected a press after release to be fresh")
	}
}

func newTestController(t *testing.T) (*controller, *fakeCanvas, *storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	c := newFakeCanvas(120, 40)
	ctrl := newController(Options{
		Loop:       game.NewLoop(game.WithRand(rand.New(rand.NewSource(1))), game.WithStore(store)),
		Scores:     store,
		KeyRelease: 60 * time.Millisecond,
		NowPlaying: func() string { return "RUN" },
	}, c)
	return ctrl, c, store
}

func key(k tl.Key) tl.Event { return tl.Event{Type: tl.EventKey, Key: k} }
func char(ch rune) tl.Event { return tl.Event{Type: tl.EventKey, Ch: ch} }

func TestControllerKeyFlow(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	now := time.Now()

	ctrl.handleKey(char('p'), now, 0)
	if ctrl.loop.State() != game.StateShop {
		t.Fatalf("Expected P to open the shop, got %s", ctrl.loop.State())
	}
	ctrl.handleKey(key(tl.KeyEsc), now, 0)
	if ctrl.loop.State() != game.StateStart {
		t.Fatalf("Expected Esc to close the shop, got %s", ctrl.loop.State())
	}

	ctrl.handleKey(key(tl.KeySpace), now, 0)
	if ctrl.loop.State() != game.StatePlaying {
		t.Fatalf("Expected Space to start, got %s", ctrl.loop.State())
	}

	ctrl.handleKey(char('a'), now, 0)
	if !ctrl.loop.Snapshot().Accelerating {
		t.Error("Expected A to toggle acceleration")
	}
	ctrl.handleKey(char('s'), now, 0)
	if !ctrl.loop.Snapshot().TimeStopActive {
		t.Error("Expected S to trigger time stop")
	}

	_ = ctrl.loop.EndGame()

	// Space still held from before the crash.
	ctrl.handleKey(key(tl.KeySpace), now.Add(10*time.Millisecond), 10)
	if ctrl.loop.State() != game.StateGameOver {
		t.Fatalf("Expected a held Space not to restart, got %s", ctrl.loop.State())
	}

	ctrl.handleKey(char('b'), now, 0)
	if ctrl.loop.State() != game.StateStart {
		t.Errorf("Expected B to go back to the start screen, got %s", ctrl.loop.State())
	}
}

func TestControllerJumpRelease(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	now := time.Now()

	ctrl.handleKey(key(tl.KeySpace), now, 0)
	ctrl.jump.down = false

	ctrl.handleKey(key(tl.KeySpace), now, 0)
	if got := ctrl.loop.Session().Player.JumpCount; got != 1 {
		t.Fatalf("Expected one jump, got %d", got)
	}

	// Auto-repeat inside the window keeps the key held.
	ctrl.handleKey(key(tl.KeySpace), now.Add(20*time.Millisecond), 20)
	if got := ctrl.loop.Session().Player.JumpCount; got != 1 {
		t.Errorf("Expected a repeat not to double jump, got %d jumps", got)
	}

	if ctrl.jump.expire(now.Add(200 * time.Millisecond)) {
		ctrl.loop.ReleaseJump()
	}
	ctrl.handleKey(key(tl.KeySpace), now.Add(210*time.Millisecond), 210)
	if got := ctrl.loop.Session().Player.JumpCount; got != 2 {
		t.Errorf("Expected a press after release to double jump, got %d jumps", got)
	}
}

func TestControllerHeldStartKeyDoesNotJump(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	now := time.Now()

	ctrl.handleKey(key(tl.KeySpace), now, 0)
	if ctrl.loop.State() != game.StatePlaying {
		t.Fatalf("Expected Space to start, got %s", ctrl.loop.State())
	}

	ctrl.handleKey(key(tl.KeySpace), now.Add(30*time.Millisecond), 30)
	p := ctrl.loop.Session().Player
	if p.JumpCount != 0 || p.Airborne {
		t.Errorf("Expected the repeat of the start press not to jump, got %d jumps", p.JumpCount)
	}

	if ctrl.jump.expire(now.Add(100 * time.Millisecond)) {
		ctrl.loop.ReleaseJump()
	}
	ctrl.handleKey(key(tl.KeySpace), now.Add(110*time.Millisecond), 110)
	if got := ctrl.loop.Session().Player.JumpCount; got != 1 {
		t.Errorf("Expected a fresh press to jump, got %d jumps", got)
	}
}

func TestControllerDrawsEachState(t *testing.T) {
	ctrl, c, store := newTestController(t)
	if _, err := store.SaveHighScore(4321); err != nil {
		t.Fatal(err)
	}

	ctrl.draw()
	if !c.contains("Press SPACE to start") || !c.contains("High Score: 4321") {
		t.Error("Expected the title screen with the best score")
	}

	_ = ctrl.loop.Start(0)
	c.cells = map[[2]int]tl.Cell{}
	ctrl.draw()
	if !c.contains("Score: 0") || !c.contains("Time stop ready") || !c.contains("RUN") {
		t.Error("Expected the HUD while playing")
	}

	_ = ctrl.loop.EndGame()
	c.cells = map[[2]int]tl.Cell{}
	ctrl.draw()
	if !c.contains("GAME OVER!") || !c.contains("#1: 4321 pts") {
		t.Error("Expected the game over screen with high scores")
	}

	_ = ctrl.loop.OpenShop()
	c.cells = map[[2]int]tl.Cell{}
	ctrl.draw()
	if !c.contains("-- SHOP --") || !c.contains("Coins: 0") {
		t.Error("Expected the shop overlay")
	}
}

func TestPaletteFor(t *testing.T) {
	if !PaletteFor(storage.ThemeDark).Stars {
		t.Error("Expected stars in the dark theme")
	}
	if PaletteFor(storage.ThemeLight).Background != tl.ColorWhite {
		t.Error("Expected a light background for the light theme")
	}
	if PaletteFor("neon").Background != darkPalette.Background {
		t.Error("Expected unknown themes to fall back to dark")
	}
}

func TestStarsStayOnScreen(t *testing.T) {
	c := newFakeCanvas(10, 5)
	(&Stars{background: tl.ColorBlack}).draw(c)

	if len(c.cells) == 0 {
		t.Fatal("Expected some stars")
	}
	for pos := range c.cells {
		if pos[0] >= 10 || pos[1] >= 5 {
			t.Errorf("Expected stars inside the screen, got %v", pos)
		}
	}
}
