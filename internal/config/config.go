package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// DefaultTargetFPS is the simulation frame rate used when none is configured.
	DefaultTargetFPS = 60
	// DefaultMasterVolume is the music and effect volume, 0-100.
	DefaultMasterVolume = 50
	// DefaultKeyReleaseMS is how long a held key may go quiet before the
	// terminal frontend treats it as released.
	DefaultKeyReleaseMS = 60

	configRelPath = "danarun/danarun.conf"
)

// SupportedFPS lists the frame rates selectable in settings.
var SupportedFPS = []int{30, 60, 120}

// Config holds the user configuration for danarun.
type Config struct {
	TargetFPS          int
	MasterVolume       int
	BGMTrack           int
	AudioEnabled       bool
	AssetsDir          string // Optional directory overriding built-in sprites and music
	NormalizeSpawnRate bool
	KeyReleaseMS       int
	Seed               int64  // 0 means seed from the clock
	LogFilePath        string // Custom log file path (empty means use XDG default)

	path string
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		TargetFPS:    DefaultTargetFPS,
		MasterVolume: DefaultMasterVolume,
		AudioEnabled: true,
		KeyReleaseMS: DefaultKeyReleaseMS,
	}
}

// Path returns the XDG location of the configuration file.
func Path() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("could not resolve config path: %w", err)
	}
	return path, nil
}

// Load reads the danarun configuration from the XDG config directory. If the
// file doesn't exist or cannot be read, it returns a Config with default values.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil // Return defaults if the config dir is unusable
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from path. Unknown keys and invalid values
// are ignored.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	file, err := os.Open(path)
	if err != nil {
		// Config file doesn't exist, return defaults
		return cfg, nil
	}
	defer func() {
		_ = file.Close() // Ignore close error on read-only file
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			continue
		}

		cfg.apply(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}

	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("could not read config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) apply(key, value string) {
	switch key {
	case "target_fps":
		if fps, err := strconv.Atoi(value); err == nil && IsSupportedFPS(fps) {
			c.TargetFPS = fps
		}
	case "master_volume":
		if vol, err := strconv.Atoi(value); err == nil {
			c.MasterVolume = clampVolume(vol)
		}
	case "bgm_track":
		if track, err := strconv.Atoi(value); err == nil && track >= 0 {
			c.BGMTrack = track
		}
	case "audio":
		if enabled, err := strconv.ParseBool(value); err == nil {
			c.AudioEnabled = enabled
		}
	case "assets_dir":
		c.AssetsDir = expandHome(value)
	case "normalize_spawn_rate":
		if enabled, err := strconv.ParseBool(value); err == nil {
			c.NormalizeSpawnRate = enabled
		}
	case "key_release_ms":
		if ms, err := strconv.Atoi(value); err == nil && ms > 0 {
			c.KeyReleaseMS = ms
		}
	case "seed":
		if seed, err := strconv.ParseInt(value, 10, 64); err == nil {
			c.Seed = seed
		}
	case "log_path":
		// Accept the value as-is, will be validated in setupLogging
		c.LogFilePath = value
	}
}

// IsSupportedFPS reports whether fps is one of SupportedFPS.
func IsSupportedFPS(fps int) bool {
	for _, f := range SupportedFPS {
		if f == fps {
			return true
		}
	}
	return false
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// SetVolume updates the master volume, clamped to 0-100.
func (c *Config) SetVolume(v int) {
	c.MasterVolume = clampVolume(v)
}

// Save writes the settings that the launcher can change back to the file
// the config was loaded from. Other keys are rewritten with their current
// values so the file stays complete.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := Path()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("could not create config dir: %w", err)
	}

	return os.WriteFile(c.path, []byte(c.render()), 0644)
}

func (c *Config) render() string {
	var b strings.Builder
	b.WriteString("# danarun configuration file\n")
	fmt.Fprintf(&b, "target_fps=%d\n", c.TargetFPS)
	fmt.Fprintf(&b, "master_volume=%d\n", c.MasterVolume)
	fmt.Fprintf(&b, "bgm_track=%d\n", c.BGMTrack)
	fmt.Fprintf(&b, "audio=%t\n", c.AudioEnabled)
	fmt.Fprintf(&b, "normalize_spawn_rate=%t\n", c.NormalizeSpawnRate)
	fmt.Fprintf(&b, "key_release_ms=%d\n", c.KeyReleaseMS)
	if c.Seed != 0 {
		fmt.Fprintf(&b, "seed=%d\n", c.Seed)
	}
	if c.AssetsDir != "" {
		fmt.Fprintf(&b, "assets_dir=%s\n", c.AssetsDir)
	}
	if c.LogFilePath != "" {
		fmt.Fprintf(&b, "log_path=%s\n", c.LogFilePath)
	}
	return b.String()
}

// CreateDefaultConfig creates a default configuration file in the XDG config
// directory if it doesn't already exist. It does not overwrite existing configurations.
func CreateDefaultConfig() error {
	path, err := Path()
	if err != nil {
		return err
	}

	// Don't overwrite existing config
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	defaultConfig := `# danarun configuration file
# Simulation frame rate: 30, 60 or 120
target_fps=60

# Music and sound effect volume, 0-100
master_volume=50

# Background music track index (0 = RUN)
bgm_track=0

# Set to false to run without sound
audio=true

# Scale the per-frame obstacle chance so spawn density does not depend on
# the frame rate. Off keeps the classic behaviour.
normalize_spawn_rate=false

# Terminals do not report key releases. A held key counts as released after
# this many milliseconds without a repeat.
key_release_ms=60

# Directory with sprite (.txt/.png) or music (.mp3/.wav) overrides
# assets_dir=~/danarun-assets

# Fixed RNG seed, 0 or unset seeds from the clock
# seed=0

# Log file path for danarun internal logs
# If commented out or empty, logs will be stored in the default XDG state directory:
#   - macOS: ~/Library/Application Support/danarun/danarun.log
#   - Linux: ~/.local/state/danarun/danarun.log
# log_path=
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

func (c *Config) String() string {
	return fmt.Sprintf("TargetFPS: %d\nMasterVolume: %d\nBGMTrack: %d", c.TargetFPS, c.MasterVolume, c.BGMTrack)
}
