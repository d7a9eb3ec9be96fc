package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const sampleRate = beep.SampleRate(44100)

// Coin chime timing, two notes back to back.
const (
	coinNote1Duration = 70 * time.Millisecond
	coinNote2Duration = 180 * time.Millisecond
	coinAttack        = 5 * time.Millisecond
	coinRelease       = 60 * time.Millisecond

	// coinLevel matches the pickup sample level relative to the music.
	coinLevel = 0.2
)

// melodies are the fallback loops used when a track has no sample file,
// one per entry in Tracks. 0 is a rest.
var melodies = []struct {
	bpm   float64
	notes []float64
}{
	{bpm: 168, notes: []float64{
		329.63, 392.00, 493.88, 392.00, 440.00, 0, 440.00, 523.25,
		493.88, 392.00, 329.63, 0, 293.66, 329.63, 392.00, 0,
	}},
	{bpm: 132, notes: []float64{
		523.25, 0, 659.25, 587.33, 523.25, 0, 392.00, 440.00,
		523.25, 587.33, 659.25, 0, 698.46, 659.25, 587.33, 0,
	}},
	{bpm: 144, notes: []float64{
		440.00, 493.88, 523.25, 0, 523.25, 493.88, 440.00, 0,
		392.00, 440.00, 493.88, 0, 329.63, 0, 329.63, 0,
	}},
	{bpm: 120, notes: []float64{
		392.00, 0, 392.00, 0, 392.00, 0, 0, 0,
		349.23, 0, 349.23, 0, 311.13, 0, 293.66, 0,
	}},
}

// melody is an endless square-wave chiptune loop.
type melody struct {
	notes      []float64
	noteLen    int
	gateLen    int
	pos        int
	phase      float64
	lastNoteIx int
}

// newMelody returns the fallback loop for track i.
func newMelody(i int) beep.Streamer {
	n := len(melodies)
	m := melodies[((i%n)+n)%n]

	noteLen := sampleRate.N(time.Duration(float64(time.Minute) / m.bpm / 2))
	return &melody{
		notes:   m.notes,
		noteLen: noteLen,
		gateLen: noteLen * 3 / 4,
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		ix := (m.pos / m.noteLen) % len(m.notes)
		if ix != m.lastNoteIx {
			m.phase = 0
			m.lastNoteIx = ix
		}
		inNote := m.pos % m.noteLen

		val := 0.0
		if freq := m.notes[ix]; freq > 0 && inNote < m.gateLen {
			if m.phase < 0.5 {
				val = 0.25
			} else {
				val = -0.25
			}
			// Short decay so consecutive notes are audible.
			val *= 1 - 0.6*float64(inNote)/float64(m.gateLen)
			m.phase += freq / float64(sampleRate)
			m.phase -= math.Floor(m.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer: beep.Take(sampleRate.N(duration), s),
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
		total:    sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(0, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// coinChime is the synthesized pickup sound: B5 then E6.
func coinChime() (beep.Streamer, error) {
	n1, err := generators.SquareTone(sampleRate, 987.77)
	if err != nil {
		return nil, err
	}
	n2, err := generators.SineTone(sampleRate, 1318.51)
	if err != nil {
		return nil, err
	}

	return beep.Seq(
		newEnvelope(n1, coinNote1Duration, coinAttack, coinRelease/2),
		newEnvelope(n2, coinNote2Duration, coinAttack, coinRelease),
	), nil
}

// volumeLevel converts a 0-100 slider value into an effects.Volume
// exponent. Zero is reported as silent since log2(0) is -Inf.
func volumeLevel(v int) (exp float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	if v > 100 {
		v = 100
	}
	return math.Log2(float64(v) / 100), false
}

func newVolume(s beep.Streamer, level float64) *effects.Volume {
	if level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level)}
}
