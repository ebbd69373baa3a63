// Package when implements context-activation expressions for the
// keywire shortcut engine.
//
// A shortcut carries an Expression that decides whether it may fire
// given the set of currently active context names. An expression is a
// disjunction of AND-groups, each group a set of context references
// that may be negated with the "!" prefix:
//
//	expr, err := when.Parse("editor && !readonly || palette")
//
// The expression above matches while "editor" is active and "readonly"
// is not, or while "palette" is active. The empty expression (Always)
// matches unconditionally and marks a global shortcut.
//
// # Negation veto
//
// A negated reference whose context is active vetoes the whole
// expression, not just its own AND-group. Negation expresses "never
// while this context is active", an exclusion rule layered over the
// affirmative OR-terms, so no other term can rescue a vetoed
// expression. An AND-group consisting purely of negations, none of
// which match, is vacuously true, but it only decides the expression
// when no term anywhere carries an affirmation.
//
// # Predicates
//
// An expression may instead wrap an opaque Predicate over the active
// context list, for callers whose activation rules do not reduce to
// OR-of-ANDs.
//
// # Active set
//
// ActiveSet is the mutable, ordered, deduplicating set of active
// context names. Names must be non-empty and must not carry the
// negation prefix; violations are construction errors, never silent
// no-ops. ActiveSet is not safe for concurrent use; the owning
// dispatcher serializes access.
package when
