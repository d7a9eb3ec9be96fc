package game

import "time"

// Session is everything owned by one play-through. It is rebuilt on every
// start and dropped when the player returns to the start screen.
type Session struct {
	Player     *Player
	Decoration *Entity
	Obstacles  []*Entity
	Coins      []*Entity

	Score          float64
	Difficulty     float64
	Accelerating   bool
	CoinsCollected int

	spawner  *Spawner
	jumpHeld bool

	// Deferred effects are expirations on the session clock, so a session
	// that stops receiving frames can never fire them.
	clock            time.Duration
	timeStopActive   bool
	timeStopUntil    time.Duration
	timeStopCooldown time.Duration
	swapActive       bool
	swapUntil        time.Duration
}

func newSession(spawner *Spawner) *Session {
	spawner.Reset()
	return &Session{
		Player:     NewPlayer(),
		Decoration: NewEntity(KindDecoration, DecorationX, DecorationY),
		Difficulty: 1,
		spawner:    spawner,
	}
}

// Clock is the wall-clock time simulated so far.
func (s *Session) Clock() time.Duration {
	return s.clock
}

// TimeFactor is the slow-motion multiplier applied to kinematics.
func (s *Session) TimeFactor() float64 {
	if s.timeStopActive {
		return TimeStopFactor
	}
	return 1
}

// ScrollSpeed is the current leftward world speed.
func (s *Session) ScrollSpeed() float64 {
	return ScrollSpeed(s.Difficulty, s.Accelerating)
}

// TimeStopActive reports whether slow motion is running.
func (s *Session) TimeStopActive() bool {
	return s.timeStopActive
}

// TimeStopRemaining is how long slow motion has left.
func (s *Session) TimeStopRemaining() time.Duration {
	if !s.timeStopActive {
		return 0
	}
	return s.timeStopUntil - s.clock
}

// TimeStopCooldown is how long until the ability can be used again.
func (s *Session) TimeStopCooldown() time.Duration {
	return s.timeStopCooldown
}

// Spawner exposes the session's spawn policy state.
func (s *Session) Spawner() *Spawner {
	return s.spawner
}

func (s *Session) triggerTimeStop() bool {
	if s.timeStopCooldown > 0 {
		return false
	}
	s.timeStopActive = true
	s.timeStopUntil = s.clock + TimeStopDuration
	s.timeStopCooldown = TimeStopCooldown
	return true
}

// startSwap holds the decoration on its second frame; its own animation
// pauses until the swap expires.
func (s *Session) startSwap() {
	s.swapActive = true
	s.swapUntil = s.clock + DecorationSwapDuration
	s.Decoration.Frame = 1
}

// advanceClock moves the session clock and returns whether slow motion
// ended at this step.
func (s *Session) advanceClock(step time.Duration) (timeStopEnded bool) {
	s.clock += step

	if s.timeStopActive && s.clock >= s.timeStopUntil {
		s.timeStopActive = false
		timeStopEnded = true
	}
	if s.swapActive && s.clock >= s.swapUntil {
		s.swapActive = false
		s.Decoration.Frame = 0
	}
	return timeStopEnded
}

func (s *Session) coolDown(step time.Duration) {
	if s.timeStopCooldown > 0 {
		s.timeStopCooldown -= step
		if s.timeStopCooldown < 0 {
			s.timeStopCooldown = 0
		}
	}
}
