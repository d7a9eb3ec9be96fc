// Package storage is a small persistent key-value store for state that
// survives across sessions: high scores, the coin balance and the theme.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/shvbsle/danarun/internal/log"
)

const (
	KeyHighScores = "highScores"
	KeyCoins      = "coins"
	KeyTheme      = "theme"

	storeRelPath = "danarun/storage.json"
)

// Store persists string values by key in a JSON file. Reads never fail:
// a missing or corrupted file behaves like an empty store.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open opens the store in the XDG data directory.
func Open() (*Store, error) {
	path, err := xdg.DataFile(storeRelPath)
	if err != nil {
		return nil, fmt.Errorf("could not resolve storage path: %w", err)
	}
	return OpenAt(path), nil
}

// OpenAt opens the store backed by the file at path.
func OpenAt(path string) *Store {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}
	s.load()
	return s
}

// NewMemory returns a store that is never written to disk.
func NewMemory() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.G().Warn("could not read storage, using defaults", "path", s.path, "error", err)
		}
		return
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.G().Warn("corrupted storage file, resetting", "path", s.path, "error", err)
		return
	}
	if values != nil {
		s.values = values
	}
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and writes the store through to disk.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create storage dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}
