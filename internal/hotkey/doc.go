// Package hotkey implements the keywire shortcut-dispatch engine: it
// decides, for each physical key event, which registered shortcut
// handlers fire.
//
// # Architecture
//
// Dispatch runs four stages over an incoming event:
//
//  1. Key normalization maps the event's (visible key, physical code)
//     pair onto a canonical dispatch key (internal/hotkey/key).
//  2. The dispatch table yields the candidate records for the raw
//     "code:"-bound key (checked first) and the normalized key.
//  3. Each candidate is filtered by exact modifier-set match
//     (resolving the virtual System modifier) and by its context
//     expression against the active context set
//     (internal/hotkey/when).
//  4. Every matching handler is invoked in registration order; there
//     is no short-circuit, so independent handlers on the same key all
//     fire. Per-record suppression flags are applied to the event.
//
// # Typing fast path
//
// During plain text entry almost no keystroke can match a shortcut.
// The dispatcher caches whether any currently-context-matching record
// requires no modifiers beyond optional Shift; while the cache is
// clear, unmodified non-special keystrokes return immediately without
// any lookup or evaluation. The cache is recomputed after every
// structural change (bind, remove, context mutation). Special keys
// (Escape, F1-F12, PrintScreen, Insert) bypass the fast path.
//
// # Concurrency
//
// All operations are synchronous and run to completion. Handlers may
// freely mutate the dispatcher they were dispatched from (bind, remove,
// activate contexts): the in-progress pass iterates snapshots, so such
// mutation becomes visible to subsequent dispatches only. Independent
// Dispatcher instances share no state.
//
// # Usage
//
//	d := hotkey.NewWithDefaults()
//
//	id, err := d.Bind(hotkey.NewBinding("k", save).
//		WithModifiers("system").
//		WithPreventDefault())
//
//	fired := d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl))
package hotkey
