package arcade

import "time"

// heldKey tracks a key on a terminal that only reports presses. Holding a
// key produces auto-repeat presses; the key counts as released once no
// repeat has arrived for the release window.
type heldKey struct {
	window time.Duration
	down   bool
	last   time.Time
}

// press records a press and reports whether it is a fresh one rather
// than an auto-repeat.
func (k *heldKey) press(now time.Time) bool {
	fresh := !k.down
	k.down = true
	k.last = now
	return fresh
}

// expire reports whether the key has just been released.
func (k *heldKey) expire(now time.Time) bool {
	if !k.down || now.Sub(k.last) < k.window {
		return false
	}
	k.down = false
	return true
}
