package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/keywire/internal/hotkey"
)

// ActionRegistry maps action names to handler functions. Binding
// declarations reference handlers by these names.
type ActionRegistry struct {
	mu      sync.RWMutex
	actions map[string]hotkey.HandlerFunc
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make(map[string]hotkey.HandlerFunc),
	}
}

// Register adds a named action. Registering under a taken name returns
// ErrDuplicateAction.
func (r *ActionRegistry) Register(name string, handler hotkey.HandlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, name)
	}
	r.actions[name] = handler
	return nil
}

// MustRegister is Register that panics on error, for static setup.
func (r *ActionRegistry) MustRegister(name string, handler hotkey.HandlerFunc) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Lookup returns the handler registered under name.
func (r *ActionRegistry) Lookup(name string) (hotkey.HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.actions[name]
	return h, ok
}

// Names returns all registered action names, sorted.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
