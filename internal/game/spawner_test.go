package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpawnObstacleAntiRepetition(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(7)), false)

	prev := KindNone
	run := 0
	for i := 0; i < 1000; i++ {
		o := s.SpawnObstacle()

		switch o.Kind {
		case KindGround:
			run++
			if run > MaxConsecutiveGround {
				t.Fatalf("spawn %d: ground run of %d exceeds %d", i, run, MaxConsecutiveGround)
			}
		case KindAir:
			if prev == KindAir {
				t.Fatalf("spawn %d: air followed air", i)
			}
			run = 0
		default:
			t.Fatalf("spawn %d: unexpected kind %s", i, o.Kind)
		}

		if o.X != PlayfieldWidth {
			t.Errorf("spawn %d: expected x=%d, got %v", i, PlayfieldWidth, o.X)
		}
		prev = o.Kind
	}
}

func TestSpawnObstaclePlacement(t *testing.T) {
	s := NewSpawner(&fixedRand{f: 0}, false)

	ground := s.SpawnObstacle()
	if ground.Kind != KindGround {
		t.Fatalf("Expected first draw below 0.5 to be ground, got %s", ground.Kind)
	}
	if want := float64(PlayfieldHeight - GroundObstacleHeight); ground.Y != want {
		t.Errorf("Expected ground obstacle y=%v, got %v", want, ground.Y)
	}

	for i := 0; i < 2; i++ {
		s.SpawnObstacle()
	}
	air := s.SpawnObstacle()
	if air.Kind != KindAir {
		t.Fatalf("Expected air after %d ground, got %s", MaxConsecutiveGround, air.Kind)
	}
	if air.Y != AirObstacleY {
		t.Errorf("Expected air obstacle y=%d, got %v", AirObstacleY, air.Y)
	}
	if s.ConsecutiveGround() != 0 || s.LastKind() != KindAir {
		t.Errorf("Expected run reset after air, got run=%d last=%s", s.ConsecutiveGround(), s.LastKind())
	}
}

func TestThresholdRanges(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(3)), false)

	for i := 0; i < 500; i++ {
		s.Reset()
		if b := s.NextBirdMS(); b < BirdSpawnMinMS || b > BirdSpawnMaxMS || b != math.Trunc(b) {
			t.Fatalf("bird threshold %v outside [%d, %d]", b, BirdSpawnMinMS, BirdSpawnMaxMS)
		}
		if c := s.NextCoinMS(); c < CoinSpawnMinMS || c > CoinSpawnMaxMS || c != math.Trunc(c) {
			t.Fatalf("coin threshold %v outside [%d, %d]", c, CoinSpawnMinMS, CoinSpawnMaxMS)
		}
	}

	low := NewSpawner(&fixedRand{}, false)
	high := NewSpawner(&fixedRand{high: true}, false)
	if low.NextBirdMS() != BirdSpawnMinMS || high.NextBirdMS() != BirdSpawnMaxMS {
		t.Errorf("Expected bird bounds to be inclusive, got %v and %v", low.NextBirdMS(), high.NextBirdMS())
	}
	if low.NextCoinMS() != CoinSpawnMinMS || high.NextCoinMS() != CoinSpawnMaxMS {
		t.Errorf("Expected coin bounds to be inclusive, got %v and %v", low.NextCoinMS(), high.NextCoinMS())
	}
}

func TestAdvanceRespectsObstacleGap(t *testing.T) {
	s := NewSpawner(&fixedRand{f: 0, high: true}, false)

	if got := s.Advance(ObstacleMinGapMS-1, 1); len(got) != 0 {
		t.Fatalf("Expected nothing before the minimum gap, got %d entities", len(got))
	}

	got := s.Advance(1, 1)
	if len(got) != 1 || got[0].Kind != KindGround {
		t.Fatalf("Expected one ground obstacle at the gap, got %v", got)
	}

	if got := s.Advance(ObstacleMinGapMS/2, 1); len(got) != 0 {
		t.Errorf("Expected gap timer to restart after a spawn, got %d entities", len(got))
	}
}

func TestAdvanceSpawnsBirdsAndCoins(t *testing.T) {
	// A draw of 0.99 never passes the obstacle chance.
	s := NewSpawner(&fixedRand{f: 0.99}, false)

	got := s.Advance(BirdSpawnMinMS, 1)
	if len(got) != 1 || got[0].Kind != KindBird {
		t.Fatalf("Expected a bird at its threshold, got %v", got)
	}
	if got[0].Y < BirdObstacleHighY || got[0].Y >= BirdObstacleLowY {
		t.Errorf("Expected bird y in [%d, %d), got %v", BirdObstacleHighY, BirdObstacleLowY, got[0].Y)
	}

	got = s.Advance(CoinSpawnMinMS-BirdSpawnMinMS, 1)
	var coin *Entity
	for _, e := range got {
		if e.Kind == KindCoin {
			coin = e
		}
	}
	if coin == nil {
		t.Fatal("Expected a coin at its threshold")
	}
	if coin.X != PlayfieldWidth || coin.Y < 0 || coin.Y > PlayfieldHeight-CoinHeight {
		t.Errorf("Unexpected coin placement (%v, %v)", coin.X, coin.Y)
	}
}

func TestObstacleChance(t *testing.T) {
	raw := NewSpawner(&fixedRand{}, false)
	if p := raw.obstacleChance(1000.0/120, 2); math.Abs(p-0.04) > 1e-12 {
		t.Errorf("Expected raw chance 0.04 regardless of frame time, got %v", p)
	}

	norm := NewSpawner(&fixedRand{}, true)
	if p := norm.obstacleChance(1000.0/ReferenceFPS, 1); math.Abs(p-BaseObstacleSpawnChance) > 1e-12 {
		t.Errorf("Expected normalized chance at reference rate to be unchanged, got %v", p)
	}

	// Two frames at 120 fps should be as likely to spawn as one at 60.
	half := norm.obstacleChance(1000.0/120, 1)
	if combined := 1 - (1-half)*(1-half); math.Abs(combined-BaseObstacleSpawnChance) > 1e-12 {
		t.Errorf("Expected two 120fps frames to match one 60fps frame, got %v", combined)
	}

	if p := raw.obstacleChance(16, 100); p != 1 {
		t.Errorf("Expected chance clamped to 1, got %v", p)
	}
}
