// Package term feeds terminal key events into a dispatcher. It
// translates tcell key events into the dispatcher's event form,
// synthesizing physical key codes so layout-independent shortcuts work
// in the terminal too.
package term
