package game

import "github.com/shvbsle/danarun/internal/assets"

// fixedRand returns the same float for every draw. Intn returns the top of
// its range when high is set, otherwise zero.
type fixedRand struct {
	f    float64
	high bool
}

func (r *fixedRand) Float64() float64 { return r.f }

func (r *fixedRand) Intn(n int) int {
	if r.high {
		return n - 1
	}
	return 0
}

// spriteMap is an in-memory SpriteSource.
type spriteMap map[string]*assets.Sprite

func (m spriteMap) Sprite(name string) (*assets.Sprite, bool) {
	s, ok := m[name]
	return s, ok
}

func solid(name string) *assets.Sprite {
	return assets.NewSprite(name, 8, 8, func(x, y int) bool { return true })
}

func transparent(name string) *assets.Sprite {
	return assets.NewSprite(name, 8, 8, func(x, y int) bool { return false })
}

// solidSprites gives every frame of every kind a fully opaque mask.
func solidSprites() spriteMap {
	m := spriteMap{}
	for _, spec := range kindTable {
		for _, name := range spec.Frames {
			m[name] = solid(name)
		}
	}
	return m
}

type recordingListener struct {
	started   int
	balances  []int
	overs     []float64
	ranks     []int
	timeStops []bool
}

func (r *recordingListener) SessionStarted()           { r.started++ }
func (r *recordingListener) CoinCollected(balance int) { r.balances = append(r.balances, balance) }
func (r *recordingListener) TimeStopChanged(active bool) {
	r.timeStops = append(r.timeStops, active)
}

func (r *recordingListener) GameOver(score float64, rank int) {
	r.overs = append(r.overs, score)
	r.ranks = append(r.ranks, rank)
}
