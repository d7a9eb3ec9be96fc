package game

import "math"

// Rand is the randomness the spawner draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Spawner decides when and what to spawn from three independent timers:
// ground/air obstacles, birds and coins.
//
// The ground/air draw happens once per simulated frame, so its effective
// rate grows with the frame rate unless normalize is set.
type Spawner struct {
	rng       Rand
	normalize bool

	sinceObstacle float64 // ms
	sinceBird     float64
	sinceCoin     float64
	nextBird      float64
	nextCoin      float64

	lastKind          Kind
	consecutiveGround int
}

// NewSpawner returns a spawner with fresh thresholds. With normalize set the
// per-frame obstacle chance is rescaled to ReferenceFPS.
func NewSpawner(rng Rand, normalize bool) *Spawner {
	s := &Spawner{
		rng:       rng,
		normalize: normalize,
	}
	s.Reset()
	return s
}

// Reset clears the timers and anti-repetition memory and redraws the bird
// and coin thresholds.
func (s *Spawner) Reset() {
	s.sinceObstacle = 0
	s.sinceBird = 0
	s.sinceCoin = 0
	s.nextBird = s.threshold(BirdSpawnMinMS, BirdSpawnMaxMS)
	s.nextCoin = s.threshold(CoinSpawnMinMS, CoinSpawnMaxMS)
	s.lastKind = KindNone
	s.consecutiveGround = 0
}

// threshold draws a whole number of milliseconds uniformly from [min, max].
func (s *Spawner) threshold(min, max int) float64 {
	return float64(s.rng.Intn(max-min+1) + min)
}

// Advance moves every timer forward by elapsedMS and returns whatever
// spawned this frame, in obstacle, bird, coin order.
func (s *Spawner) Advance(elapsedMS, difficulty float64) []*Entity {
	s.sinceObstacle += elapsedMS
	s.sinceBird += elapsedMS
	s.sinceCoin += elapsedMS

	var spawned []*Entity

	if s.sinceObstacle >= ObstacleMinGapMS && s.rng.Float64() < s.obstacleChance(elapsedMS, difficulty) {
		spawned = append(spawned, s.SpawnObstacle())
		s.sinceObstacle = 0
	}

	if s.sinceBird >= s.nextBird {
		spawned = append(spawned, s.spawnBird())
		s.sinceBird = 0
		s.nextBird = s.threshold(BirdSpawnMinMS, BirdSpawnMaxMS)
	}

	if s.sinceCoin >= s.nextCoin {
		spawned = append(spawned, s.spawnCoin())
		s.sinceCoin = 0
		s.nextCoin = s.threshold(CoinSpawnMinMS, CoinSpawnMaxMS)
	}

	return spawned
}

func (s *Spawner) obstacleChance(elapsedMS, difficulty float64) float64 {
	p := BaseObstacleSpawnChance * difficulty
	if s.normalize {
		frames := elapsedMS / 1000 * ReferenceFPS
		p = 1 - math.Pow(1-p, frames)
	}
	return math.Max(0, math.Min(1, p))
}

// SpawnObstacle picks the next ground/air kind under the anti-repetition
// rules, records it and returns the new obstacle.
func (s *Spawner) SpawnObstacle() *Entity {
	kind := s.pickObstacleKind()

	if kind == KindGround {
		s.consecutiveGround++
	} else {
		s.consecutiveGround = 0
	}
	s.lastKind = kind

	if kind == KindGround {
		return NewEntity(KindGround, PlayfieldWidth, PlayfieldHeight-GroundObstacleHeight)
	}
	return NewEntity(KindAir, PlayfieldWidth, AirObstacleY)
}

// pickObstacleKind never lets air follow air and caps ground runs at
// MaxConsecutiveGround; a started ground run is filled up to the cap.
func (s *Spawner) pickObstacleKind() Kind {
	switch {
	case s.lastKind == KindGround && s.consecutiveGround < MaxConsecutiveGround:
		return KindGround
	case s.lastKind == KindGround:
		return KindAir
	case s.lastKind == KindAir:
		return KindGround
	}

	if s.rng.Float64() < 0.5 {
		return KindGround
	}
	return KindAir
}

func (s *Spawner) spawnBird() *Entity {
	y := s.rng.Float64()*(BirdObstacleLowY-BirdObstacleHighY) + BirdObstacleHighY
	return NewEntity(KindBird, PlayfieldWidth, y)
}

func (s *Spawner) spawnCoin() *Entity {
	y := s.rng.Float64() * (PlayfieldHeight - CoinHeight)
	return NewEntity(KindCoin, PlayfieldWidth, y)
}

// LastKind returns the kind of the most recent ground/air obstacle.
func (s *Spawner) LastKind() Kind {
	return s.lastKind
}

// ConsecutiveGround returns the length of the current ground run.
func (s *Spawner) ConsecutiveGround() int {
	return s.consecutiveGround
}

// NextBirdMS and NextCoinMS return the current spawn thresholds.
func (s *Spawner) NextBirdMS() float64 { return s.nextBird }
func (s *Spawner) NextCoinMS() float64 { return s.nextCoin }
