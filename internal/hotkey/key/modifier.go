package key

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModSystem is the virtual platform modifier. It is never carried
	// by an event; Resolve replaces it with the concrete platform
	// default (ModCtrl or ModMeta) before any comparison.
	ModSystem
)

// ErrUnknownModifier indicates a modifier name that is not recognized.
var ErrUnknownModifier = errors.New("key: unknown modifier")

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// IsConcrete returns true if m carries no virtual System bit.
func (m Modifier) IsConcrete() bool {
	return !m.Has(ModSystem)
}

// Resolve replaces the virtual System bit with the concrete system
// modifier. The system bit is added without duplication: a set that
// already contains the concrete modifier collapses onto it.
func (m Modifier) Resolve(system Modifier) Modifier {
	if !m.Has(ModSystem) {
		return m
	}
	return m.Without(ModSystem).With(system)
}

// Match reports whether the event's active modifiers satisfy a
// shortcut's required set. The required set is resolved against the
// system modifier first; the comparison is exact set equality, so
// neither subsets nor supersets match. An empty required set matches
// only when no modifiers are held.
func Match(active, required, system Modifier) bool {
	return active == required.Resolve(system)
}

// DefaultSystemModifier returns the concrete modifier the virtual
// System modifier resolves to on this host: Meta on macOS, Ctrl
// everywhere else.
func DefaultSystemModifier() Modifier {
	if runtime.GOOS == "darwin" {
		return ModMeta
	}
	return ModCtrl
}

// String returns a human-readable representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	if m.Has(ModSystem) {
		parts = append(parts, "System")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
	"system":  ModSystem,
	"mod":     ModSystem,
}

// ModifierFromName returns the Modifier for a given name
// (case-insensitive). Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifierNames combines a list of modifier names into a single
// Modifier. Names are case-insensitive and duplicates collapse.
// An unrecognized name returns ErrUnknownModifier.
func ParseModifierNames(names []string) (Modifier, error) {
	var result Modifier
	for _, name := range names {
		mod := ModifierFromName(name)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
		}
		result = result.With(mod)
	}
	return result, nil
}
