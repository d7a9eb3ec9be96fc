// Package audio plays the background music and pickup sounds. Every
// operation is a no-op until Initialize succeeds, so the game runs
// silently on machines without an audio device.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/shvbsle/danarun/internal/game"
	"github.com/shvbsle/danarun/internal/log"
)

var _ game.Listener = (*SoundManager)(nil)

// timeStopDuck is the music volume exponent while slow motion runs.
const timeStopDuck = -1.5

// Options configures a SoundManager.
type Options struct {
	Volume    int    // 0-100
	Track     int    // index into Tracks
	AssetsDir string // optional directory holding audio/<file>.mp3|.wav
}

// SoundManager owns the speaker mixer: one looping BGM stream and any
// number of one-shot effects.
type SoundManager struct {
	mu     sync.Mutex
	opts   Options
	logger *slog.Logger

	mixer  *beep.Mixer
	master *effects.Volume

	bgm       *beep.Ctrl
	bgmVolume *effects.Volume
	bgmCloser beep.StreamSeekCloser

	coinSample *beep.Buffer

	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize before use.
func NewSoundManager(opts Options) *SoundManager {
	mixer := &beep.Mixer{}
	exp, silent := volumeLevel(opts.Volume)
	return &SoundManager{
		opts:   opts,
		logger: log.Audio(),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: exp, Silent: silent},
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.master)

	sm.coinSample = sm.loadCoinSample()
	sm.initialized = true
	sm.logger.Info("audio initialized", "sample_rate", int(sampleRate), "track", TrackAt(sm.opts.Track).Title)
	return nil
}

// loadCoinSample buffers the optional pickup sample so each pickup can
// replay it without touching the disk.
func (sm *SoundManager) loadCoinSample() *beep.Buffer {
	path, ok := findSample(sm.opts.AssetsDir, coinFile)
	if !ok {
		return nil
	}

	streamer, format, err := decodeFile(path)
	if err != nil {
		sm.logger.Warn("could not load coin sample, using chime", "path", path, "error", err)
		return nil
	}
	defer func() {
		_ = streamer.Close()
	}()

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(toOutputRate(streamer, format))
	return buf
}

// Cleanup stops every sound and releases the open BGM file.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.closeBGM()
	sm.initialized = false
}

// Track returns the selected BGM index.
func (sm *SoundManager) Track() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.opts.Track
}

// SelectTrack changes the BGM. If music is playing it switches at once.
func (sm *SoundManager) SelectTrack(i int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.opts.Track = i
	if sm.bgm != nil {
		sm.startBGM()
	}
}

// SetVolume changes the master volume, 0-100.
func (sm *SoundManager) SetVolume(v int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.opts.Volume = v
	exp, silent := volumeLevel(v)

	speaker.Lock()
	sm.master.Volume = exp
	sm.master.Silent = silent
	speaker.Unlock()
}

// PlayBGM starts the selected track from the beginning.
func (sm *SoundManager) PlayBGM() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.startBGM()
}

// StopBGM stops the music and rewinds it.
func (sm *SoundManager) StopBGM() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.bgm == nil {
		return
	}
	speaker.Lock()
	sm.bgm.Paused = true
	sm.bgm.Streamer = nil
	speaker.Unlock()

	sm.closeBGM()
	sm.bgm = nil
	sm.bgmVolume = nil
}

// startBGM must be called with sm.mu held.
func (sm *SoundManager) startBGM() {
	if sm.bgm != nil {
		speaker.Lock()
		sm.bgm.Streamer = nil
		sm.bgm.Paused = true
		speaker.Unlock()
		sm.closeBGM()
	}

	track := TrackAt(sm.opts.Track)
	source := sm.openTrack(track)

	sm.bgmVolume = &effects.Volume{Streamer: source, Base: 2}
	sm.bgm = &beep.Ctrl{Streamer: sm.bgmVolume}

	speaker.Lock()
	sm.mixer.Add(sm.bgm)
	speaker.Unlock()
	sm.logger.Debug("bgm started", "track", track.Title)
}

// openTrack returns a looping stream for track: the sample file when one
// exists, otherwise the synthesized melody.
func (sm *SoundManager) openTrack(track Track) beep.Streamer {
	if path, ok := findSample(sm.opts.AssetsDir, track.File); ok {
		streamer, format, err := decodeFile(path)
		if err == nil {
			sm.bgmCloser = streamer
			return toOutputRate(beep.Loop(-1, streamer), format)
		}
		sm.logger.Warn("could not decode track, using synth", "track", track.Title, "error", err)
	}
	return newMelody(indexOf(track))
}

func (sm *SoundManager) closeBGM() {
	if sm.bgmCloser == nil {
		return
	}
	if err := sm.bgmCloser.Close(); err != nil {
		sm.logger.Debug("closing bgm", "error", err)
	}
	sm.bgmCloser = nil
}

// PlayCoin plays the pickup sound once.
func (sm *SoundManager) PlayCoin() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	var s beep.Streamer
	if sm.coinSample != nil {
		s = sm.coinSample.Streamer(0, sm.coinSample.Len())
	} else {
		chime, err := coinChime()
		if err != nil {
			sm.logger.Warn("could not build coin chime", "error", err)
			return
		}
		s = chime
	}

	speaker.Lock()
	sm.mixer.Add(newVolume(s, coinLevel))
	speaker.Unlock()
}

func (sm *SoundManager) duck(active bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.bgmVolume == nil {
		return
	}
	speaker.Lock()
	if active {
		sm.bgmVolume.Volume = timeStopDuck
	} else {
		sm.bgmVolume.Volume = 0
	}
	speaker.Unlock()
}

// SessionStarted restarts the music.
func (sm *SoundManager) SessionStarted() { sm.PlayBGM() }

// CoinCollected plays the pickup sound.
func (sm *SoundManager) CoinCollected(int) { sm.PlayCoin() }

// GameOver stops and rewinds the music.
func (sm *SoundManager) GameOver(float64, int) { sm.StopBGM() }

// TimeStopChanged ducks the music during slow motion.
func (sm *SoundManager) TimeStopChanged(active bool) { sm.duck(active) }

func indexOf(track Track) int {
	for i, t := range Tracks {
		if t == track {
			return i
		}
	}
	return 0
}
