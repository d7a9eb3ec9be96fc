package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// Track is one selectable background song.
type Track struct {
	Title string
	File  string // base name under <assets_dir>/audio, without extension
}

// Tracks is the music selection list, in menu order.
var Tracks = []Track{
	{Title: "RUN", File: "bgm"},
	{Title: "A Hat in Time", File: "bgm2"},
	{Title: "ウワサのあの", File: "bgm3"},
	{Title: "SOS", File: "bgm4"},
}

// coinFile is the optional pickup sample.
const coinFile = "coin"

// TrackAt returns the track for index i, wrapping out-of-range indices.
func TrackAt(i int) Track {
	n := len(Tracks)
	return Tracks[((i%n)+n)%n]
}

// findSample returns the first <dir>/audio/<base>.mp3 or .wav that exists.
func findSample(dir, base string) (string, bool) {
	if dir == "" {
		return "", false
	}
	for _, ext := range []string{".mp3", ".wav"} {
		path := filepath.Join(dir, "audio", base+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// decodeFile opens an mp3 or wav file. The returned streamer owns the file.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		err = fmt.Errorf("unsupported audio type %q", filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// toOutputRate resamples s to sampleRate when the source rate differs.
func toOutputRate(s beep.Streamer, format beep.Format) beep.Streamer {
	if format.SampleRate == sampleRate {
		return s
	}
	return beep.Resample(4, format.SampleRate, sampleRate, s)
}
