package hotkey

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/keywire/internal/hotkey/key"
	"github.com/dshills/keywire/internal/hotkey/when"
)

// HandlerFunc is invoked when a shortcut fires. A handler that needs
// its dispatcher captures it in a closure at registration time.
type HandlerFunc func(ev key.Event)

// Binding describes a shortcut to register.
type Binding struct {
	// Key is the dispatch key: a key label ("k", "Enter") normalized at
	// registration, or a raw physical binding ("code:KeyK") stored
	// verbatim.
	Key string

	// Modifiers are required modifier names, case-insensitive.
	// Duplicates collapse. "system" resolves to the platform default
	// at match time.
	Modifiers []string

	// When scopes the shortcut to active contexts. The zero value is
	// the global expression.
	When when.Expression

	// Handler is invoked on match.
	Handler HandlerFunc

	// PreventDefault suppresses the host's default action on match.
	PreventDefault bool

	// StopPropagation stops host event delivery on match.
	StopPropagation bool

	// Description documents the binding.
	Description string
}

// NewBinding creates a binding for a key and handler.
func NewBinding(keyStr string, handler HandlerFunc) Binding {
	return Binding{Key: keyStr, Handler: handler}
}

// WithModifiers sets the required modifier names.
func (b Binding) WithModifiers(names ...string) Binding {
	b.Modifiers = names
	return b
}

// WithWhen sets the context expression.
func (b Binding) WithWhen(expr when.Expression) Binding {
	b.When = expr
	return b
}

// WithPreventDefault enables default-action suppression.
func (b Binding) WithPreventDefault() Binding {
	b.PreventDefault = true
	return b
}

// WithStopPropagation enables propagation suppression.
func (b Binding) WithStopPropagation() Binding {
	b.StopPropagation = true
	return b
}

// WithDescription sets the documentation string.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// record is a stored shortcut. Immutable once inserted; removal
// discards it.
type record struct {
	id              uuid.UUID
	dispatchKey     string
	mods            key.Modifier
	expr            when.Expression
	handler         HandlerFunc
	preventDefault  bool
	stopPropagation bool
	description     string
}

// compile validates the binding and produces its stored record.
func (b Binding) compile() (*record, error) {
	if b.Key == "" {
		return nil, ErrEmptyKey
	}
	if b.Handler == nil {
		return nil, ErrNilHandler
	}

	mods, err := key.ParseModifierNames(b.Modifiers)
	if err != nil {
		return nil, err
	}

	dispatchKey := b.Key
	if !key.IsCodeKey(b.Key) {
		// Shift picks a different character on a symbol key, so the
		// label cannot identify the key; code-bound shortcuts are
		// exempt because the physical position is unambiguous.
		if mods.Has(key.ModShift) && key.IsSymbolKey(b.Key) {
			return nil, fmt.Errorf("%w: %q", ErrShiftSymbolKey, b.Key)
		}
		dispatchKey = key.Normalize(b.Key, "")
	}

	return &record{
		id:              uuid.New(),
		dispatchKey:     dispatchKey,
		mods:            mods,
		expr:            b.When,
		handler:         b.Handler,
		preventDefault:  b.PreventDefault,
		stopPropagation: b.StopPropagation,
		description:     b.Description,
	}, nil
}

// Info is a read-only view of a bound shortcut, used by removal
// predicates and listings.
type Info struct {
	// ID is the registration identifier returned by Bind.
	ID uuid.UUID

	// Key is the canonical dispatch key the record is stored under.
	Key string

	// Modifiers is the required modifier set, unresolved (may carry
	// the virtual System bit).
	Modifiers key.Modifier

	// When is the context expression.
	When when.Expression

	// PreventDefault and StopPropagation mirror the binding flags.
	PreventDefault  bool
	StopPropagation bool

	// Description documents the binding.
	Description string
}

func (r *record) info() Info {
	return Info{
		ID:              r.id,
		Key:             r.dispatchKey,
		Modifiers:       r.mods,
		When:            r.expr,
		PreventDefault:  r.preventDefault,
		StopPropagation: r.stopPropagation,
		Description:     r.description,
	}
}
