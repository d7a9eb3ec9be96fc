package panels

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shvbsle/danarun/internal/log"
)

// Panel is one modal screen of the launcher (ranking, music, settings...).
// Panels are registered in the Registry and opened by their hotkeys.
// The launcher returns to its menu when a panel reports it is done.
type Panel interface {
	// Name returns the unique identifier (kebab-case recommended).
	Name() string

	// Description is shown next to the panel in the launcher menu.
	Description() string

	// Keys returns the hotkeys that open this panel (e.g., ["r", "R"]).
	Keys() []string

	// Open is called each time the panel is shown so it can refresh its data.
	Open() tea.Cmd

	// Update handles a message while the panel is open. done closes the panel.
	Update(msg tea.Msg) (done bool, cmd tea.Cmd)

	// View renders the panel body for the given width.
	View(width int) string
}

type Registry struct {
	mu          sync.RWMutex
	panels      map[string]Panel
	keyMap      map[string]Panel
	orderedList []Panel
}

func NewRegistry() *Registry {
	return &Registry{
		panels:      make(map[string]Panel),
		keyMap:      make(map[string]Panel),
		orderedList: make([]Panel, 0),
	}
}

func (r *Registry) Register(p Panel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.panels[p.Name()]; exists {
		log.TUI().Warn("panel already registered", "panel", p.Name())
	}

	r.panels[p.Name()] = p
	r.orderedList = append(r.orderedList, p)

	for _, k := range p.Keys() {
		if existing, exists := r.keyMap[k]; exists {
			log.TUI().Warn("hotkey collision",
				"key", k,
				"existing_panel", existing.Name(),
				"new_panel", p.Name())
		}
		r.keyMap[k] = p
	}
}

func (r *Registry) Get(name string) (Panel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.panels[name]
	return p, ok
}

func (r *Registry) GetByKey(k string) (Panel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.keyMap[k]
	return p, ok
}

// List returns the panels in registration order.
func (r *Registry) List() []Panel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Panel, len(r.orderedList))
	copy(out, r.orderedList)
	return out
}
