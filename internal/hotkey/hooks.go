package hotkey

import "github.com/dshills/keywire/internal/hotkey/key"

// PreDispatchHook is called before an event is processed.
// Returning false consumes the event: no lookup or handler runs.
type PreDispatchHook interface {
	// PreDispatch may inspect the event. Returns false to consume it.
	PreDispatch(ev key.Event) bool
}

// PostDispatchHook is called after an event is processed, whether or
// not any handler fired.
type PostDispatchHook interface {
	// PostDispatch observes the outcome.
	PostDispatch(ev key.Event, fired bool)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(ev key.Event) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(ev key.Event) bool {
	return f(ev)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(ev key.Event, fired bool)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(ev key.Event, fired bool) {
	f(ev, fired)
}
