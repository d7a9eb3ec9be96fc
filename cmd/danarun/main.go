package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/arcade"
	"github.com/shvbsle/danarun/internal/assets"
	"github.com/shvbsle/danarun/internal/audio"
	"github.com/shvbsle/danarun/internal/config"
	"github.com/shvbsle/danarun/internal/game"
	"github.com/shvbsle/danarun/internal/storage"
	"github.com/shvbsle/danarun/internal/tui"
)

// assetLoadTimeout bounds sprite loading at startup.
const assetLoadTimeout = 10 * time.Second

func main() {
	logLevelFlag := flag.String("log-level", "", "Set log level (debug, info, warn, error). Defaults to info.")
	flag.Parse()

	logLevel := parseLogLevel(*logLevelFlag)

	// Load config first to get log path preference
	if err := config.CreateDefaultConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create default config: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := setupLogging(logLevel, cfg.LogFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not setup logging: %v\n", err)
	} else if logFile != nil {
		defer func() {
			if closeErr := logFile.Close(); closeErr != nil {
				slog.Error("failed to close log file", "error", closeErr)
			}
		}()
	}

	slog.Info("danarun starting", "version", tui.Version)
	slog.Info("configuration loaded", "target_fps", cfg.TargetFPS, "volume", cfg.MasterVolume, "track", cfg.BGMTrack)

	store, err := storage.Open()
	if err != nil {
		slog.Warn("could not open storage, progress will not be saved", "error", err)
		store = storage.NewMemory()
	}

	sprites := assets.NewStore(assets.DefaultManifest(), assets.WithOverrideDir(cfg.AssetsDir))
	ctx, cancel := context.WithTimeout(context.Background(), assetLoadTimeout)
	if err := sprites.Load(ctx); err != nil {
		slog.Warn("asset loading interrupted", "error", err)
	}
	cancel()
	if !sprites.Ready() {
		skipped := sprites.SkipUnresolved()
		slog.Warn("unresolved assets skipped, they will draw as placeholders", "assets", skipped)
	}

	sound := audio.NewSoundManager(audio.Options{
		Volume:    cfg.MasterVolume,
		Track:     cfg.BGMTrack,
		AssetsDir: cfg.AssetsDir,
	})
	if cfg.AudioEnabled {
		if err := sound.Initialize(); err != nil {
			slog.Warn("could not initialize audio, running silently", "error", err)
		}
	} else {
		slog.Info("audio disabled in config")
	}
	defer sound.Cleanup()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	loop := game.NewLoop(
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithNormalizedSpawns(cfg.NormalizeSpawnRate),
		game.WithSprites(sprites),
		game.WithStore(store),
		game.WithListener(sound),
		game.WithTargetFPS(cfg.TargetFPS),
	)

	deps := tui.Deps{
		Config: cfg,
		Store:  store,
		Sound:  sound,
		Styles: tui.NewStyles(store.Theme()),
	}
	registry := tui.DefaultPanels(deps)
	slog.Info("loaded panels", "count", len(registry.List()))

	for {
		p := tea.NewProgram(tui.New(deps, registry), tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			slog.Error("TUI error", "error", err)
			break
		}

		model, ok := finalModel.(tui.Model)
		if !ok || !model.LaunchGame() {
			break
		}

		// Settings may have changed the frame rate since the last run.
		if err := loop.SetTargetFPS(cfg.TargetFPS); err != nil {
			slog.Warn("keeping previous frame rate", "fps", cfg.TargetFPS, "error", err)
		}

		arc := arcade.New(arcade.Options{
			Loop:       loop,
			Sprites:    sprites,
			Scores:     store,
			Theme:      store.Theme(),
			KeyRelease: time.Duration(cfg.KeyReleaseMS) * time.Millisecond,
			NowPlaying: func() string { return audio.TrackAt(sound.Track()).Title },
		})

		slog.Info("launching game", "fps", loop.TargetFPS(), "theme", store.Theme())
		if err := arc.Run(); err != nil {
			slog.Error("game ended with error", "error", err)
		}

		slog.Info("returning to launcher")
	}

	slog.Info("danarun exiting")
}
