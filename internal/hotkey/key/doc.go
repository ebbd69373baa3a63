// Package key provides key identity and modifier primitives for the
// keywire shortcut engine.
//
// The package has three concerns:
//
//   - Normalization: mapping the (visible key, physical code) pair
//     reported by an event source onto a canonical dispatch key, so a
//     shortcut bound to "K" fires regardless of the active keyboard
//     layout. See Normalize.
//
//   - Modifiers: a compact bitmask of held modifier keys, including
//     the virtual System modifier that resolves to Ctrl or Meta
//     depending on the host platform. See Modifier and Match.
//
//   - Events: the minimal key-down event surface the dispatcher
//     consumes. Event is an interface so any host event source
//     (terminal backend, test harness) can feed the engine; BasicEvent
//     is the plain-struct implementation.
//
// Dispatch keys come in two addressing modes: the normalized key label
// ("K", "Enter") and the raw physical binding ("code:KeyK") produced
// by CodeKey. Code-bound lookups take priority during dispatch.
package key
