package luapred

import (
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keywire/internal/hotkey/when"
)

// Engine hosts a sandboxed Lua state and compiles predicate sources.
//
// gopher-lua's LState is not goroutine-safe; the engine serializes all
// compilation and evaluation through a single mutex, so predicates
// compiled from one engine may be evaluated from any goroutine.
type Engine struct {
	mu     sync.Mutex
	l      *lua.LState
	closed bool
}

// NewEngine creates a sandboxed engine.
func NewEngine() *Engine {
	l := lua.NewState(lua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	openSafeLibraries(l)
	installSandbox(l)
	return &Engine{l: l}
}

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(l *lua.LState) {
	lua.OpenBase(l)
	lua.OpenTable(l)
	lua.OpenString(l)
	lua.OpenMath(l)

	// io, os, debug, and package stay closed: predicates must not touch
	// the filesystem, spawn processes, or load modules.
}

// installSandbox removes the base-library escape hatches that survive
// selective opening.
func installSandbox(l *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		l.SetGlobal(name, lua.LNil)
	}
}

// Compile turns a Lua expression over ctx into a when.Predicate. The
// name labels the source in error messages. Evaluation failures at
// dispatch time fail closed: the predicate reports no match.
func (e *Engine) Compile(name, source string) (when.Predicate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrEngineClosed
	}

	wrapped := fmt.Sprintf("return function(ctx)\n\treturn (%s) and true or false\nend", source)
	chunk, err := e.l.Load(strings.NewReader(wrapped), name)
	if err != nil {
		return nil, &CompileError{Name: name, Err: err}
	}

	e.l.Push(chunk)
	if err := e.l.PCall(0, 1, nil); err != nil {
		return nil, &CompileError{Name: name, Err: err}
	}
	fn, ok := e.l.Get(-1).(*lua.LFunction)
	e.l.Pop(1)
	if !ok {
		return nil, &CompileError{Name: name, Err: fmt.Errorf("source did not produce a function")}
	}

	return func(active []string) bool {
		return e.eval(fn, active)
	}, nil
}

// eval invokes a compiled predicate function against the active set.
func (e *Engine) eval(fn *lua.LFunction, active []string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}

	ctx := e.l.NewTable()
	for _, name := range active {
		ctx.RawSetString(name, lua.LTrue)
	}

	if err := e.l.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ctx); err != nil {
		return false
	}
	ret := e.l.Get(-1)
	e.l.Pop(1)
	return lua.LVAsBool(ret)
}

// Close shuts the Lua state down. Predicates compiled from the engine
// report no match after Close.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.l.Close()
}
