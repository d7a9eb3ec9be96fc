package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shvbsle/danarun/internal/log"
)

const (
	MaxHighScores = 10

	ThemeDark  = "dark-theme"
	ThemeLight = "light-theme"
)

// HighScores is a descending list of at most MaxHighScores scores.
type HighScores []float64

func normalize(scores []float64) HighScores {
	sort.Slice(scores, func(i, j int) bool {
		return scores[i] > scores[j]
	})
	if len(scores) > MaxHighScores {
		scores = scores[:MaxHighScores]
	}
	return HighScores(scores)
}

// HighScores returns the stored ranking, best first.
func (s *Store) HighScores() HighScores {
	raw, ok := s.Get(KeyHighScores)
	if !ok || raw == "" {
		return HighScores{}
	}

	var scores []float64
	if err := json.Unmarshal([]byte(raw), &scores); err != nil {
		log.G().Warn("corrupted high scores, resetting", "error", err)
		return HighScores{}
	}
	return normalize(scores)
}

// SaveHighScore merges score into the ranking and persists the top entries.
func (s *Store) SaveHighScore(score float64) (HighScores, error) {
	scores := append(s.HighScores(), score)
	ranked := normalize(scores)

	data, err := json.Marshal([]float64(ranked))
	if err != nil {
		return ranked, err
	}
	if err := s.Set(KeyHighScores, string(data)); err != nil {
		return ranked, fmt.Errorf("could not save high score: %w", err)
	}
	return ranked, nil
}

// IsHighScore reports whether score would enter the ranking.
func (hs HighScores) IsHighScore(score float64) bool {
	if len(hs) < MaxHighScores {
		return true
	}

	return score > hs[MaxHighScores-1]
}

// Rank returns the 1-based position score holds or would hold, or 0 when it
// falls outside the ranking.
func (hs HighScores) Rank(score float64) int {
	for i, entry := range hs {
		if score >= entry {
			return i + 1
		}
	}

	if len(hs) < MaxHighScores {
		return len(hs) + 1
	}

	return 0
}

// Top returns at most n of the best scores.
func (hs HighScores) Top(n int) HighScores {
	if n > len(hs) {
		n = len(hs)
	}
	return hs[:n]
}

// Coins returns the persisted coin balance.
func (s *Store) Coins() int {
	raw, ok := s.Get(KeyCoins)
	if !ok {
		return 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.G().Warn("invalid coin balance, using 0", "value", raw)
		return 0
	}
	return n
}

// AddCoins increments the balance by n and returns the new balance.
func (s *Store) AddCoins(n int) (int, error) {
	balance := s.Coins() + n
	if balance < 0 {
		balance = 0
	}
	if err := s.Set(KeyCoins, strconv.Itoa(balance)); err != nil {
		return balance, fmt.Errorf("could not save coins: %w", err)
	}
	return balance, nil
}

// Theme returns the persisted theme name, dark by default.
func (s *Store) Theme() string {
	theme, ok := s.Get(KeyTheme)
	if !ok || (theme != ThemeDark && theme != ThemeLight) {
		return ThemeDark
	}
	return theme
}

// SetTheme persists the theme name.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.Set(KeyTheme, theme)
}
