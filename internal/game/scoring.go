package game

import "math"

// DifficultyFor steps difficulty up by DifficultyStep for every
// DifficultyScalePoint points of score.
func DifficultyFor(score float64) float64 {
	if score < 0 || math.IsNaN(score) {
		return 1
	}
	d := 1 + DifficultyStep*math.Floor(score/DifficultyScalePoint)
	return math.Round(d*10) / 10
}

// ScrollSpeed is the leftward speed of obstacles and coins in px/s.
func ScrollSpeed(difficulty float64, accelerating bool) float64 {
	speed := BaseScrollSpeed * difficulty
	if accelerating {
		speed *= AccelerationMultiplier
	}
	return speed
}
