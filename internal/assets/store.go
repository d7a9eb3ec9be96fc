package assets

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/shvbsle/danarun/internal/log"
)

// Store resolves a manifest once at startup. Entries that fail to load are
// logged and left unusable; lookups for them report false.
type Store struct {
	manifest    Manifest
	fsys        fs.FS
	overrideDir string
	logger      *slog.Logger

	sprites map[string]*Sprite
	missing []string
	ready   bool
}

type Option func(*Store)

// WithOverrideDir makes files named <name>.png or <name>.txt in dir take
// precedence over manifest paths.
func WithOverrideDir(dir string) Option {
	return func(s *Store) {
		s.overrideDir = dir
	}
}

// WithFS resolves relative manifest paths against fsys instead of the
// embedded sprites.
func WithFS(fsys fs.FS) Option {
	return func(s *Store) {
		s.fsys = fsys
	}
}

func NewStore(manifest Manifest, opts ...Option) *Store {
	s := &Store{
		manifest: manifest,
		fsys:     builtin,
		logger:   log.Assets(),
		sprites:  make(map[string]*Sprite, len(manifest)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load resolves every manifest entry. Individual failures do not stop
// loading; only context cancellation is returned.
func (s *Store) Load(ctx context.Context) error {
	names := make([]string, 0, len(s.manifest))
	for name := range s.manifest {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		sprite, err := s.load(name, s.manifest[name])
		if err != nil {
			s.logger.Error("failed to load asset", "asset", name, "path", s.manifest[name], "error", err)
			s.missing = append(s.missing, name)
			continue
		}
		s.sprites[name] = sprite
		s.logger.Debug("asset loaded", "asset", name, "width", sprite.Width, "height", sprite.Height)
	}

	s.ready = true
	s.logger.Info("all assets resolved", "loaded", len(s.sprites), "missing", len(s.missing))
	return nil
}

func (s *Store) load(name, path string) (*Sprite, error) {
	if s.overrideDir != "" {
		for _, ext := range []string{".png", ".txt"} {
			candidate := filepath.Join(s.overrideDir, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				return s.decode(name, candidate, func() (io.ReadCloser, error) {
					return os.Open(candidate)
				})
			}
		}
	}

	if path == "" {
		return nil, errors.New("no path in manifest")
	}
	if filepath.IsAbs(path) {
		return s.decode(name, path, func() (io.ReadCloser, error) {
			return os.Open(path)
		})
	}
	return s.decode(name, path, func() (io.ReadCloser, error) {
		return s.fsys.Open(path)
	})
}

func (s *Store) decode(name, path string, open func() (io.ReadCloser, error)) (*Sprite, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return ParseArt(name, f)
	case ".png":
		img, err := png.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", path, err)
		}
		return FromImage(name, img), nil
	default:
		return nil, fmt.Errorf("unsupported asset type %q", filepath.Ext(path))
	}
}

// SkipUnresolved fails every entry an interrupted Load never reached,
// leaving those names unusable, and marks the store ready. It returns the
// skipped names.
func (s *Store) SkipUnresolved() []string {
	var skipped []string
	for name := range s.manifest {
		if _, ok := s.sprites[name]; ok || slices.Contains(s.missing, name) {
			continue
		}
		skipped = append(skipped, name)
	}
	sort.Strings(skipped)

	for _, name := range skipped {
		s.logger.Error("asset never resolved, skipping", "asset", name, "path", s.manifest[name])
	}
	s.missing = append(s.missing, skipped...)
	s.ready = true
	return skipped
}

// Ready reports whether Load has finished.
func (s *Store) Ready() bool {
	return s.ready
}

// Sprite returns the loaded sprite for name.
func (s *Store) Sprite(name string) (*Sprite, bool) {
	sprite, ok := s.sprites[name]
	return sprite, ok
}

// Put registers an already built sprite, replacing any loaded one.
func (s *Store) Put(sprite *Sprite) {
	s.sprites[sprite.Name] = sprite
}

// Missing lists the names that failed to load.
func (s *Store) Missing() []string {
	return s.missing
}
