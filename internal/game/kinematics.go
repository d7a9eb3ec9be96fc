package game

import "math"

// Player is the runner: a fixed-lane entity with vertical motion.
type Player struct {
	Entity
	VelocityY float64
	JumpCount int
	Airborne  bool
}

// NewPlayer returns a grounded player in its lane.
func NewPlayer() *Player {
	return &Player{
		Entity: *NewEntity(KindPlayer, PlayerX, PlayerFloorY),
	}
}

// FloorY is the highest y the player may reach.
func (p *Player) FloorY() float64 {
	return PlayfieldHeight - p.Height
}

// ApplyJump gives the player an upward impulse if a jump is left. The
// second jump is weaker by DoubleJumpMultiplier. Returns false when both
// jumps are spent.
func ApplyJump(p *Player) bool {
	if p.JumpCount >= MaxJumps {
		return false
	}

	p.Airborne = true
	p.VelocityY = BaseJumpVelocity
	if p.JumpCount == 1 {
		p.VelocityY *= DoubleJumpMultiplier
	}
	p.JumpCount++
	return true
}

// Integrate advances the player dt seconds under gravity. timeFactor
// scales both displacement and gravity. A negative or non-finite dt is
// skipped.
func Integrate(p *Player, dt, timeFactor float64) {
	if !validDelta(dt) || !p.Airborne {
		return
	}

	p.Y += p.VelocityY * timeFactor * dt
	p.VelocityY += Gravity * timeFactor * dt

	if floor := p.FloorY(); p.Y >= floor {
		p.Y = floor
		p.Airborne = false
		p.VelocityY = 0
		p.JumpCount = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
}

func validDelta(dt float64) bool {
	return !math.IsNaN(dt) && !math.IsInf(dt, 0) && dt >= 0
}
