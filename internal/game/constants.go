package game

import "time"

// World geometry, in world pixels.
const (
	PlayfieldWidth  = 1200
	PlayfieldHeight = 600

	PlayerWidth  = 50
	PlayerHeight = 50
	PlayerX      = PlayfieldWidth / 4
	PlayerFloorY = PlayfieldHeight - PlayerHeight

	GroundObstacleWidth  = 90
	GroundObstacleHeight = 90
	AirObstacleWidth     = 70
	AirObstacleHeight    = 70
	AirObstacleY         = PlayfieldHeight - AirObstacleHeight - PlayfieldHeight/3
	BirdObstacleWidth    = 50
	BirdObstacleHeight   = 50
	BirdObstacleLowY     = PlayfieldHeight - AirObstacleHeight - 250
	BirdObstacleHighY    = 50

	CoinWidth  = 30
	CoinHeight = 30

	DecorationWidth  = 300
	DecorationHeight = 300
	DecorationX      = -100
	DecorationY      = PlayfieldHeight - DecorationHeight
)

// Kinematics.
const (
	Gravity              = 30 * 60 // px/s^2
	BaseJumpVelocity     = -890    // px/s
	DoubleJumpMultiplier = 0.75
	MaxJumps             = 2
)

// Scrolling, scoring and difficulty.
const (
	BaseScrollSpeed        = 7 * 60 // px/s
	AccelerationMultiplier = 1.5
	ScoreBasePerSecond     = 60
	DifficultyScalePoint   = 2000
	DifficultyStep         = 0.1
)

// Spawning.
const (
	ObstacleMinGapMS        = 300
	BaseObstacleSpawnChance = 0.02
	MaxConsecutiveGround    = 3
	BirdSpawnMinMS          = 500
	BirdSpawnMaxMS          = 2000
	CoinSpawnMinMS          = 5000
	CoinSpawnMaxMS          = 10000

	// ReferenceFPS is the frame rate BaseObstacleSpawnChance was tuned at.
	ReferenceFPS = 60
)

// Abilities and animation.
const (
	TimeStopFactor         = 0.5
	TimeStopDuration       = 3 * time.Second
	TimeStopCooldown       = 30 * time.Second
	AnimationInterval      = 100 * time.Millisecond
	DecorationSwapDuration = 300 * time.Millisecond
)

// DefaultTargetFPS is the frame rate a new Loop throttles to.
const DefaultTargetFPS = 60
