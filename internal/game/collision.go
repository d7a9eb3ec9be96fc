package game

import "github.com/shvbsle/danarun/internal/assets"

// SpriteSource looks up the loaded frame for an asset name.
// *assets.Store satisfies it.
type SpriteSource interface {
	Sprite(name string) (*assets.Sprite, bool)
}

// Detector runs the two-phase collision test: an AABB check on floored
// coordinates, then a per-pixel alpha test over the overlap only when the
// boxes intersect.
type Detector struct {
	sprites    SpriteSource
	pixelTests int
}

func NewDetector(sprites SpriteSource) *Detector {
	return &Detector{sprites: sprites}
}

// Collide reports whether a and b touch with opaque pixels. A missing
// frame on either side never collides.
func (d *Detector) Collide(a, b *Entity) bool {
	ra, rb := a.Bounds(), b.Bounds()
	if !ra.Intersects(rb) {
		return false
	}
	return d.pixelTest(a, ra, b, rb)
}

func (d *Detector) pixelTest(a *Entity, ra Rect, b *Entity, rb Rect) bool {
	d.pixelTests++

	if d.sprites == nil {
		return false
	}
	sa, ok := d.sprites.Sprite(a.FrameName())
	if !ok {
		return false
	}
	sb, ok := d.sprites.Sprite(b.FrameName())
	if !ok {
		return false
	}

	x0, x1 := max(ra.X, rb.X), min(ra.X+ra.W, rb.X+rb.W)
	y0, y1 := max(ra.Y, rb.Y), min(ra.Y+ra.H, rb.Y+rb.H)
	if x1 <= x0 || y1 <= y0 {
		return false
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if sa.OpaqueIn(x-ra.X, y-ra.Y, ra.W, ra.H) && sb.OpaqueIn(x-rb.X, y-rb.Y, rb.W, rb.H) {
				return true
			}
		}
	}
	return false
}

// PixelTests returns how many times the per-pixel phase has run.
func (d *Detector) PixelTests() int {
	return d.pixelTests
}
