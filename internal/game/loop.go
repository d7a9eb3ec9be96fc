package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/shvbsle/danarun/internal/log"
	"github.com/shvbsle/danarun/internal/storage"
)

// State is the game-level state machine.
type State int

const (
	StateStart State = iota
	StatePlaying
	StateGameOver
	StateShop
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameOver"
	case StateShop:
		return "shop"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrInvalidTransition is returned when an operation is not allowed from
// the current state.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrUnsupportedFPS is returned by SetTargetFPS for rates other than 30, 60
// and 120.
var ErrUnsupportedFPS = errors.New("unsupported frame rate")

// FrameResult tells the frame scheduler what a Frame call did.
type FrameResult int

const (
	// FrameIdle means no session is playing.
	FrameIdle FrameResult = iota
	// FrameThrottled means less than one frame interval has passed.
	FrameThrottled
	// FrameSkipped means the delta was not a finite number.
	FrameSkipped
	// FrameSimulated means the world advanced one step.
	FrameSimulated
	// FrameGameOver means the step ended the session.
	FrameGameOver
)

// Store is the persisted state the loop writes to.
type Store interface {
	SaveHighScore(score float64) (storage.HighScores, error)
	AddCoins(n int) (int, error)
}

// Listener receives feedback events from the loop.
type Listener interface {
	SessionStarted()
	CoinCollected(balance int)
	GameOver(score float64, rank int)
	TimeStopChanged(active bool)
}

// NopListener ignores every event.
type NopListener struct{}

func (NopListener) SessionStarted()       {}
func (NopListener) CoinCollected(int)     {}
func (NopListener) GameOver(float64, int) {}
func (NopListener) TimeStopChanged(bool)  {}

// Loop owns the session and drives it one frame at a time. It is not safe
// for concurrent use; the frame scheduler and input handlers must run on
// one goroutine.
type Loop struct {
	state     State
	shopFrom  State
	session   *Session
	spawner   *Spawner
	detector  *Detector
	store     Store
	listener  Listener
	logger    *slog.Logger
	targetFPS int

	frameInterval float64 // ms
	lastFrame     float64 // ms timestamp of the last processed frame

	finalScore float64
	finalRank  int
}

type Option func(*Loop)

// WithRand injects the spawner's randomness.
func WithRand(r Rand) Option {
	return func(l *Loop) {
		l.spawner = NewSpawner(r, l.spawner.normalize)
	}
}

// WithNormalizedSpawns rescales the per-frame obstacle chance to
// ReferenceFPS so density does not depend on the frame rate.
func WithNormalizedSpawns(normalize bool) Option {
	return func(l *Loop) {
		l.spawner.normalize = normalize
	}
}

// WithSprites sets where collision masks come from.
func WithSprites(sprites SpriteSource) Option {
	return func(l *Loop) {
		l.detector = NewDetector(sprites)
	}
}

// WithStore sets where scores and coins are persisted.
func WithStore(store Store) Option {
	return func(l *Loop) {
		l.store = store
	}
}

// WithListener registers the feedback listener.
func WithListener(listener Listener) Option {
	return func(l *Loop) {
		l.listener = listener
	}
}

// WithTargetFPS sets the throttle rate. Unsupported values are ignored.
func WithTargetFPS(fps int) Option {
	return func(l *Loop) {
		_ = l.SetTargetFPS(fps)
	}
}

func NewLoop(opts ...Option) *Loop {
	l := &Loop{
		state:    StateStart,
		spawner:  NewSpawner(rand.New(rand.NewSource(time.Now().UnixNano())), false),
		detector: NewDetector(nil),
		store:    storage.NewMemory(),
		listener: NopListener{},
		logger:   log.Game(),
	}
	_ = l.SetTargetFPS(DefaultTargetFPS)

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Session returns the live session, or nil outside a play-through.
func (l *Loop) Session() *Session {
	return l.session
}

// Detector returns the collision detector.
func (l *Loop) Detector() *Detector {
	return l.detector
}

// TargetFPS returns the throttle rate.
func (l *Loop) TargetFPS() int {
	return l.targetFPS
}

// FrameInterval returns the minimum time between simulated frames.
func (l *Loop) FrameInterval() time.Duration {
	return time.Duration(l.frameInterval * float64(time.Millisecond))
}

// SetTargetFPS changes the throttle rate to 30, 60 or 120.
func (l *Loop) SetTargetFPS(fps int) error {
	switch fps {
	case 30, 60, 120:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedFPS, fps)
	}
	l.targetFPS = fps
	l.frameInterval = 1000 / float64(fps)
	return nil
}

// Start begins a new session from the start or game-over screen. now is
// the scheduler timestamp in milliseconds.
func (l *Loop) Start(now float64) error {
	if l.state != StateStart && l.state != StateGameOver {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, StatePlaying)
	}

	l.session = newSession(l.spawner)
	l.lastFrame = now
	l.state = StatePlaying
	l.logger.Info("session started", "target_fps", l.targetFPS)
	l.listener.SessionStarted()
	return nil
}

// EndGame freezes the session and persists its score.
func (l *Loop) EndGame() error {
	if l.state != StatePlaying {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, StateGameOver)
	}
	l.state = StateGameOver

	l.finalScore = math.Floor(l.session.Score)
	ranked, err := l.store.SaveHighScore(l.finalScore)
	if err != nil {
		l.logger.Warn("could not save high score", "score", l.finalScore, "error", err)
	}
	l.finalRank = 0
	for i, s := range ranked {
		if s == l.finalScore {
			l.finalRank = i + 1
			break
		}
	}

	l.logger.Info("game over",
		"score", l.finalScore,
		"rank", l.finalRank,
		"coins", l.session.CoinsCollected,
		"difficulty", l.session.Difficulty)
	l.listener.GameOver(l.finalScore, l.finalRank)
	return nil
}

// BackToStart discards the finished session and returns to the start screen.
func (l *Loop) BackToStart() error {
	if l.state != StateGameOver {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, StateStart)
	}
	l.session = nil
	l.state = StateStart
	return nil
}

// OpenShop shows the shop overlay from the start or game-over screen.
func (l *Loop) OpenShop() error {
	if l.state != StateStart && l.state != StateGameOver {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, StateShop)
	}
	l.shopFrom = l.state
	l.state = StateShop
	return nil
}

// CloseShop returns to the screen the shop was opened from.
func (l *Loop) CloseShop() error {
	if l.state != StateShop {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.state, l.shopFrom)
	}
	l.state = l.shopFrom
	return nil
}

// PressJump attempts a jump. A held key only jumps once; ReleaseJump
// re-arms it.
func (l *Loop) PressJump() bool {
	if l.state != StatePlaying || l.session.jumpHeld {
		return false
	}
	l.session.jumpHeld = true
	return ApplyJump(l.session.Player)
}

// ReleaseJump re-arms the jump input.
func (l *Loop) ReleaseJump() {
	if l.session != nil {
		l.session.jumpHeld = false
	}
}

// ToggleAcceleration flips the acceleration toggle.
func (l *Loop) ToggleAcceleration() bool {
	if l.state != StatePlaying {
		return false
	}
	l.session.Accelerating = !l.session.Accelerating
	return l.session.Accelerating
}

// TriggerTimeStop starts slow motion if the ability is off cooldown.
func (l *Loop) TriggerTimeStop() bool {
	if l.state != StatePlaying || !l.session.triggerTimeStop() {
		return false
	}
	l.listener.TimeStopChanged(true)
	return true
}

// Frame runs one step of the simulation. now is a millisecond timestamp
// from the frame scheduler.
func (l *Loop) Frame(now float64) FrameResult {
	if l.state != StatePlaying {
		return FrameIdle
	}

	elapsed := now - l.lastFrame
	switch {
	case math.IsNaN(now) || math.IsInf(now, 0):
		return FrameSkipped
	case math.IsNaN(elapsed) || math.IsInf(elapsed, 0):
		// No usable previous timestamp; this frame becomes the reference.
		l.lastFrame = now
		return FrameSkipped
	case elapsed < 0:
		// The scheduler clock went backwards; resync without simulating.
		l.lastFrame = now
		return FrameSkipped
	case elapsed < l.frameInterval:
		return FrameThrottled
	}
	l.lastFrame = now
	dt := elapsed / 1000

	s := l.session
	step := time.Duration(elapsed * float64(time.Millisecond))
	if s.advanceClock(step) {
		l.listener.TimeStopChanged(false)
	}

	Integrate(s.Player, dt, s.TimeFactor())
	s.Player.Animate(step)
	if !s.swapActive {
		s.Decoration.Animate(step)
	}

	s.Score += ScoreBasePerSecond * dt
	s.Difficulty = DifficultyFor(s.Score)
	speed := s.ScrollSpeed()

	// Fresh spawns enter at the right edge and move in the same frame.
	for _, e := range s.spawner.Advance(elapsed, s.Difficulty) {
		if e.Kind == KindCoin {
			s.Coins = append(s.Coins, e)
		} else {
			s.Obstacles = append(s.Obstacles, e)
		}
	}

	s.Obstacles = advance(s.Obstacles, speed, dt, step)
	s.Coins = advance(s.Coins, speed, dt, step)

	for _, o := range s.Obstacles {
		if o.Kind == KindGround && !s.swapActive && l.detector.Collide(s.Decoration, o) {
			s.startSwap()
		}
	}

	for _, o := range s.Obstacles {
		if l.detector.Collide(&s.Player.Entity, o) {
			_ = l.EndGame()
			return FrameGameOver
		}
	}

	kept := s.Coins[:0]
	for _, c := range s.Coins {
		if l.detector.Collide(&s.Player.Entity, c) {
			l.collectCoin()
			continue
		}
		kept = append(kept, c)
	}
	s.Coins = kept

	s.coolDown(step)
	return FrameSimulated
}

func (l *Loop) collectCoin() {
	l.session.CoinsCollected++
	balance, err := l.store.AddCoins(1)
	if err != nil {
		l.logger.Warn("could not save coin balance", "error", err)
	}
	l.listener.CoinCollected(balance)
}

// advance scrolls, animates and prunes one entity collection in place.
func advance(entities []*Entity, speed, dt float64, step time.Duration) []*Entity {
	kept := entities[:0]
	for _, e := range entities {
		e.Scroll(speed, dt)
		e.Animate(step)
		if e.OffScreen() {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Snapshot is a read-only view of the loop for rendering.
type Snapshot struct {
	State State

	Player     Entity
	Decoration Entity
	Obstacles  []Entity
	Coins      []Entity

	Score             float64
	Difficulty        float64
	Speed             float64
	Accelerating      bool
	TimeStopActive    bool
	TimeStopRemaining time.Duration
	TimeStopCooldown  time.Duration
	CoinsCollected    int
	HasSession        bool

	FinalScore float64
	FinalRank  int
}

// Snapshot copies the render-relevant state.
func (l *Loop) Snapshot() Snapshot {
	snap := Snapshot{
		State:      l.state,
		FinalScore: l.finalScore,
		FinalRank:  l.finalRank,
	}

	s := l.session
	if s == nil {
		return snap
	}

	snap.HasSession = true
	snap.Player = s.Player.Entity
	snap.Decoration = *s.Decoration
	snap.Obstacles = make([]Entity, len(s.Obstacles))
	for i, o := range s.Obstacles {
		snap.Obstacles[i] = *o
	}
	snap.Coins = make([]Entity, len(s.Coins))
	for i, c := range s.Coins {
		snap.Coins[i] = *c
	}
	snap.Score = s.Score
	snap.Difficulty = s.Difficulty
	snap.Speed = s.ScrollSpeed()
	snap.Accelerating = s.Accelerating
	snap.TimeStopActive = s.TimeStopActive()
	snap.TimeStopRemaining = s.TimeStopRemaining()
	snap.TimeStopCooldown = s.TimeStopCooldown()
	snap.CoinsCollected = s.CoinsCollected
	return snap
}
