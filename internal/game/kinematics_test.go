package game

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"
)

func TestApplyJumpImpulses(t *testing.T) {
	p := NewPlayer()

	if !ApplyJump(p) {
		t.Fatal("Expected first jump to succeed")
	}
	if p.VelocityY != BaseJumpVelocity {
		t.Errorf("Expected velocity %v, got %v", float64(BaseJumpVelocity), p.VelocityY)
	}
	if !p.Airborne || p.JumpCount != 1 {
		t.Errorf("Expected airborne with 1 jump, got airborne=%t jumps=%d", p.Airborne, p.JumpCount)
	}

	if !ApplyJump(p) {
		t.Fatal("Expected double jump to succeed")
	}
	if want := BaseJumpVelocity * DoubleJumpMultiplier; p.VelocityY != want {
		t.Errorf("Expected double jump velocity %v, got %v", want, p.VelocityY)
	}

	p.VelocityY = 123
	if ApplyJump(p) {
		t.Error("Expected third jump to be refused")
	}
	if p.VelocityY != 123 || p.JumpCount != MaxJumps {
		t.Errorf("Expected refused jump to leave state alone, got velocity=%v jumps=%d", p.VelocityY, p.JumpCount)
	}
}

func TestIntegrateLanding(t *testing.T) {
	p := NewPlayer()
	ApplyJump(p)
	ApplyJump(p)
	p.Y = p.FloorY() - 1
	p.VelocityY = 100

	Integrate(p, 0.1, 1)

	if p.Y != p.FloorY() {
		t.Errorf("Expected player clamped to floor %v, got %v", p.FloorY(), p.Y)
	}
	if p.Airborne || p.JumpCount != 0 || p.VelocityY != 0 {
		t.Errorf("Expected landing to reset state, got airborne=%t jumps=%d velocity=%v",
			p.Airborne, p.JumpCount, p.VelocityY)
	}
}

func TestIntegrateCeiling(t *testing.T) {
	p := NewPlayer()
	ApplyJump(p)
	p.Y = 5

	Integrate(p, 0.1, 1)

	if p.Y != 0 {
		t.Errorf("Expected player clamped to top edge, got %v", p.Y)
	}
}

func TestIntegrateSkipsInvalidDelta(t *testing.T) {
	for _, dt := range []float64{math.NaN(), math.Inf(1), -0.016} {
		p := NewPlayer()
		ApplyJump(p)
		y, v := p.Y, p.VelocityY

		Integrate(p, dt, 1)

		if p.Y != y || p.VelocityY != v {
			t.Errorf("dt=%v: expected no change, got y=%v velocity=%v", dt, p.Y, p.VelocityY)
		}
	}
}

func TestIntegrateGroundedPlayerStays(t *testing.T) {
	p := NewPlayer()
	Integrate(p, 0.5, 1)
	if p.Y != PlayerFloorY || p.VelocityY != 0 {
		t.Errorf("Expected grounded player to stay put, got y=%v velocity=%v", p.Y, p.VelocityY)
	}
}

func TestTimeFactorHalvesMotion(t *testing.T) {
	normal, slow := NewPlayer(), NewPlayer()
	ApplyJump(normal)
	ApplyJump(slow)

	Integrate(normal, 0.05, 1)
	Integrate(slow, 0.05, TimeStopFactor)

	dn := PlayerFloorY - normal.Y
	ds := PlayerFloorY - slow.Y
	if math.Abs(ds-dn*TimeStopFactor) > 1e-9 {
		t.Errorf("Expected slow displacement %v, got %v", dn*TimeStopFactor, ds)
	}
}

// Velocity changes by exactly gravity * timeFactor * dt while airborne.
func TestPropertyGravityIntegration(t *testing.T) {
	f := func(seed int64) bool {
		r := rand.New(rand.NewSource(seed))

		p := NewPlayer()
		p.Airborne = true
		p.Y = 100
		p.VelocityY = r.Float64()*2000 - 1000
		dt := r.Float64() * 0.25
		tf := 1.0
		if r.Intn(2) == 0 {
			tf = TimeStopFactor
		}

		v0, y0 := p.VelocityY, p.Y
		Integrate(p, dt, tf)

		if math.Abs(p.VelocityY-(v0+Gravity*tf*dt)) > 1e-9 {
			t.Logf("velocity %v -> %v with dt=%v tf=%v", v0, p.VelocityY, dt, tf)
			return false
		}
		want := math.Max(0, y0+v0*tf*dt)
		return math.Abs(p.Y-want) < 1e-9
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 500}); err != nil {
		t.Error(err)
	}
}
