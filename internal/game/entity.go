package game

import (
	"math"
	"time"

	"github.com/shvbsle/danarun/internal/assets"
)

// Kind tags every entity in the world.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindGround
	KindAir
	KindBird
	KindCoin
	KindDecoration
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindGround:
		return "ground"
	case KindAir:
		return "air"
	case KindBird:
		return "bird"
	case KindCoin:
		return "coin"
	case KindDecoration:
		return "decoration"
	default:
		return "none"
	}
}

// KindSpec is the per-kind data table entry: size and animation frames.
type KindSpec struct {
	Width  float64
	Height float64
	Frames []string
	// Animated kinds cycle their frames every AnimationInterval.
	Animated bool
}

var kindTable = map[Kind]KindSpec{
	KindPlayer: {
		Width: PlayerWidth, Height: PlayerHeight,
		Frames:   []string{assets.Player, assets.Player2},
		Animated: true,
	},
	KindGround: {
		Width: GroundObstacleWidth, Height: GroundObstacleHeight,
		Frames: []string{assets.GroundObstacle},
	},
	KindAir: {
		Width: AirObstacleWidth, Height: AirObstacleHeight,
		Frames:   []string{assets.AirObstacle, assets.AirObstacle2},
		Animated: true,
	},
	KindBird: {
		Width: BirdObstacleWidth, Height: BirdObstacleHeight,
		Frames: []string{
			assets.BirdObstacle1, assets.BirdObstacle2,
			assets.BirdObstacle3, assets.BirdObstacle4,
		},
		Animated: true,
	},
	KindCoin: {
		Width: CoinWidth, Height: CoinHeight,
		Frames:   []string{assets.Coin, assets.Coin2},
		Animated: true,
	},
	KindDecoration: {
		Width: DecorationWidth, Height: DecorationHeight,
		Frames:   []string{assets.Decoration, assets.Decoration2},
		Animated: true,
	},
}

// Spec returns the data table entry for k.
func Spec(k Kind) KindSpec {
	return kindTable[k]
}

// Rect is an axis-aligned box with integer (floored) coordinates.
type Rect struct {
	X, Y, W, H int
}

// Intersects is the standard AABB overlap test.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Entity is anything drawn and updated in the world.
type Entity struct {
	Kind   Kind
	X, Y   float64
	Width  float64
	Height float64
	Frame  int

	frameElapsed time.Duration
}

// NewEntity places an entity of kind k at (x, y) with the kind's size.
func NewEntity(k Kind, x, y float64) *Entity {
	spec := kindTable[k]
	return &Entity{
		Kind:   k,
		X:      x,
		Y:      y,
		Width:  spec.Width,
		Height: spec.Height,
	}
}

// Bounds returns the floored bounding box.
func (e *Entity) Bounds() Rect {
	return Rect{
		X: int(math.Floor(e.X)),
		Y: int(math.Floor(e.Y)),
		W: int(math.Floor(e.Width)),
		H: int(math.Floor(e.Height)),
	}
}

// FrameName returns the asset name of the current animation frame.
func (e *Entity) FrameName() string {
	frames := kindTable[e.Kind].Frames
	if len(frames) == 0 {
		return ""
	}
	return frames[e.Frame%len(frames)]
}

// Animate advances the frame index once AnimationInterval has passed.
func (e *Entity) Animate(elapsed time.Duration) {
	spec := kindTable[e.Kind]
	if !spec.Animated || len(spec.Frames) < 2 {
		return
	}

	e.frameElapsed += elapsed
	if e.frameElapsed > AnimationInterval {
		e.Frame = (e.Frame + 1) % len(spec.Frames)
		e.frameElapsed = 0
	}
}

// Scroll moves the entity left by speed px/s over dt seconds.
func (e *Entity) Scroll(speed, dt float64) {
	e.X -= speed * dt
}

// OffScreen reports whether the entity has fully left the playfield.
func (e *Entity) OffScreen() bool {
	return e.X+e.Width < 0
}
