package key

import "fmt"

// Event is the key-down surface the dispatcher consumes. An event
// source exposes the visible key, the physical code, the held concrete
// modifiers, and the two suppression mutators a matched shortcut may
// apply.
type Event interface {
	// Key returns the visible key string ("a", "я", "Enter").
	Key() string

	// Code returns the physical key code ("KeyA", "Digit1", "Escape").
	Code() string

	// Modifiers returns the held modifiers. The result is always
	// concrete; the virtual System modifier never appears on events.
	Modifiers() Modifier

	// PreventDefault suppresses the host's default action for the event.
	PreventDefault()

	// StopPropagation stops further delivery of the event by the host.
	StopPropagation()
}

// BasicEvent is a plain-struct Event used by adapters and tests.
type BasicEvent struct {
	key  string
	code string
	mods Modifier

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a key event. Only concrete modifier bits are
// retained; a stray System bit is dropped.
func NewEvent(visibleKey, physicalCode string, mods Modifier) *BasicEvent {
	return &BasicEvent{
		key:  visibleKey,
		code: physicalCode,
		mods: mods.Without(ModSystem),
	}
}

// Key returns the visible key string.
func (e *BasicEvent) Key() string { return e.key }

// Code returns the physical key code.
func (e *BasicEvent) Code() string { return e.code }

// Modifiers returns the held modifiers.
func (e *BasicEvent) Modifiers() Modifier { return e.mods }

// PreventDefault marks the event's default action as suppressed.
func (e *BasicEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation marks the event's propagation as stopped.
func (e *BasicEvent) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented returns true if PreventDefault was called.
func (e *BasicEvent) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped returns true if StopPropagation was called.
func (e *BasicEvent) PropagationStopped() bool { return e.propagationStopped }

// GoString implements fmt.GoStringer for debugging.
func (e *BasicEvent) GoString() string {
	return fmt.Sprintf("BasicEvent{Key: %q, Code: %q, Modifiers: %s}", e.key, e.code, e.mods)
}
