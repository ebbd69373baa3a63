// Package luapred compiles Lua expressions into context predicates.
// A predicate source is a Lua expression over a table ctx whose keys
// are the active context names, e.g.
//
//	ctx["editor"] and not ctx["modal"]
//
// Scripts run inside a sandboxed interpreter with no filesystem,
// process, or module-loading access.
package luapred
