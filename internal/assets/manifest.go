package assets

import "embed"

//go:embed sprites/*.txt
var builtin embed.FS

// Logical sprite names.
const (
	Player         = "player"
	Player2        = "player_2"
	GroundObstacle = "ground_obstacle"
	AirObstacle    = "air_obstacle"
	AirObstacle2   = "air_obstacle_2"
	BirdObstacle1  = "bird_obstacle_1"
	BirdObstacle2  = "bird_obstacle_2"
	BirdObstacle3  = "bird_obstacle_3"
	BirdObstacle4  = "bird_obstacle_4"
	Decoration     = "dana_image"
	Decoration2    = "dana_image_2"
	Coin           = "coin"
	Coin2          = "coin_2"
)

// Manifest maps logical names to asset paths.
type Manifest map[string]string

// DefaultManifest lists the built-in sprites.
func DefaultManifest() Manifest {
	names := []string{
		Player, Player2,
		GroundObstacle,
		AirObstacle, AirObstacle2,
		BirdObstacle1, BirdObstacle2, BirdObstacle3, BirdObstacle4,
		Decoration, Decoration2,
		Coin, Coin2,
	}

	m := make(Manifest, len(names))
	for _, name := range names {
		m[name] = "sprites/" + name + ".txt"
	}
	return m
}
