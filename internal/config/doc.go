// Package config loads shortcut declarations from TOML and JSON files
// and applies them to a dispatcher. Declarations name their handlers by
// action name; an action registry supplies the handler functions at
// apply time.
package config
