package luapred

import (
	"errors"
	"testing"

	"github.com/dshills/keywire/internal/hotkey"
	"github.com/dshills/keywire/internal/hotkey/key"
	"github.com/dshills/keywire/internal/hotkey/when"
)

func TestCompileAndEvaluate(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	pred, err := e.Compile("editor-not-modal", `ctx["editor"] and not ctx["modal"]`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	tests := []struct {
		active []string
		want   bool
	}{
		{[]string{"editor"}, true},
		{[]string{"editor", "modal"}, false},
		{[]string{"modal"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := pred(tt.active); got != tt.want {
			t.Errorf("pred(%v) = %v, want %v", tt.active, got, tt.want)
		}
	}
}

func TestCompileSyntaxError(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	_, err := e.Compile("bad", `ctx[`)
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Compile error = %T, want *CompileError", err)
	}
	if compileErr.Name != "bad" {
		t.Errorf("CompileError.Name = %q, want %q", compileErr.Name, "bad")
	}
}

func TestEvaluationFailsClosed(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	// Indexing a nil value raises at evaluation time.
	pred, err := e.Compile("raises", `ctx["a"]["b"]`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if pred([]string{"editor"}) {
		t.Error("a raising predicate must report no match")
	}
}

func TestSandboxBlocksSystemAccess(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	pred, err := e.Compile("probe", `os == nil and io == nil and load == nil and dofile == nil`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if !pred(nil) {
		t.Error("os, io, load, and dofile must be unavailable inside the sandbox")
	}
}

func TestEngineClosed(t *testing.T) {
	e := NewEngine()
	pred, err := e.Compile("p", `ctx["editor"]`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	e.Close()

	if pred([]string{"editor"}) {
		t.Error("predicates must report no match after Close")
	}
	if _, err := e.Compile("q", `true`); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Compile after Close error = %v, want ErrEngineClosed", err)
	}
}

func TestPredicateDrivesDispatch(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	pred, err := e.Compile("two-panes", `ctx["left-pane"] and ctx["right-pane"]`)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	d := hotkey.New(hotkey.Config{SystemModifier: key.ModCtrl})
	fired := 0
	_, err = d.Bind(hotkey.NewBinding("w", func(key.Event) { fired++ }).
		WithModifiers("ctrl").
		WithWhen(when.FromPredicate(pred)))
	if err != nil {
		t.Fatalf("Bind error: %v", err)
	}

	if err := d.Activate("left-pane"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if d.Handle(key.NewEvent("w", "KeyW", key.ModCtrl)) {
		t.Error("predicate should reject a single pane")
	}

	if err := d.Activate("right-pane"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if !d.Handle(key.NewEvent("w", "KeyW", key.ModCtrl)) {
		t.Error("predicate should accept both panes")
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
