package tui

import "github.com/shvbsle/danarun/internal/panels"

// DefaultPanels registers the built-in launcher panels in menu order.
func DefaultPanels(deps Deps) *panels.Registry {
	keys := newKeyMap()
	registry := panels.NewRegistry()
	registry.Register(newRankingPanel(deps, keys))
	registry.Register(newMusicPanel(deps, keys))
	registry.Register(newSettingsPanel(deps, keys))
	registry.Register(newThemePanel(deps, keys))
	registry.Register(newPatchNotesPanel(deps, keys))
	return registry
}
