package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keywire/internal/hotkey"
	"github.com/dshills/keywire/internal/hotkey/when"
)

// BindingDef is one shortcut declaration as it appears in a
// configuration file.
type BindingDef struct {
	// Key is the key label or "code:"-prefixed physical code.
	Key string `toml:"key" json:"key"`

	// Modifiers lists modifier names ("ctrl", "shift", "system", ...).
	Modifiers []string `toml:"modifiers" json:"modifiers,omitempty"`

	// When is a context expression like "editor && !modal || popup".
	// Empty means globally active.
	When string `toml:"when" json:"when,omitempty"`

	// Action names the handler in the action registry.
	Action string `toml:"action" json:"action"`

	// PreventDefault suppresses the host default action on match.
	PreventDefault bool `toml:"prevent_default" json:"prevent_default,omitempty"`

	// StopPropagation stops host event propagation on match.
	StopPropagation bool `toml:"stop_propagation" json:"stop_propagation,omitempty"`

	// Description is a human-readable label.
	Description string `toml:"description" json:"description,omitempty"`
}

// File is a full shortcut configuration document.
type File struct {
	// Contexts lists context names to activate when the file is applied.
	Contexts []string `toml:"contexts" json:"contexts,omitempty"`

	// Bindings holds the shortcut declarations in file order.
	Bindings []BindingDef `toml:"bindings" json:"bindings"`
}

// LoadTOML reads and parses a TOML configuration file.
func LoadTOML(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return ParseTOML(path, data)
}

// ParseTOML parses TOML configuration data. The source name is used in
// error messages only.
func ParseTOML(source string, data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}
	return &f, nil
}

// Apply resolves every declaration against the action registry and
// registers the batch on the dispatcher. The whole file applies
// atomically: any unknown action, bad modifier name, or invalid when
// clause rejects the file and leaves the dispatcher untouched. Contexts
// listed in the file are activated after the bindings register.
func Apply(d *hotkey.Dispatcher, reg *ActionRegistry, f *File) ([]uuid.UUID, error) {
	bindings := make([]hotkey.Binding, 0, len(f.Bindings))
	for i, def := range f.Bindings {
		handler, ok := reg.Lookup(def.Action)
		if !ok {
			return nil, &ApplyError{
				Index:  i,
				Action: def.Action,
				Err:    fmt.Errorf("%w: %q", ErrUnknownAction, def.Action),
			}
		}

		expr := when.Always()
		if def.When != "" {
			parsed, err := when.Parse(def.When)
			if err != nil {
				return nil, &ApplyError{Index: i, Action: def.Action, Err: err}
			}
			expr = parsed
		}

		b := hotkey.NewBinding(def.Key, handler).
			WithModifiers(def.Modifiers...).
			WithWhen(expr).
			WithDescription(def.Description)
		if def.PreventDefault {
			b = b.WithPreventDefault()
		}
		if def.StopPropagation {
			b = b.WithStopPropagation()
		}
		bindings = append(bindings, b)
	}

	ids, err := d.BindAll(bindings...)
	if err != nil {
		return nil, err
	}

	for _, name := range f.Contexts {
		if err := d.Activate(name); err != nil {
			return ids, fmt.Errorf("activating context %q: %w", name, err)
		}
	}
	return ids, nil
}
