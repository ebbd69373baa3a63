package hotkey

import (
	"errors"
	"testing"

	"github.com/dshills/keywire/internal/hotkey/key"
	"github.com/dshills/keywire/internal/hotkey/when"
)

// newTestDispatcher pins the system modifier to Ctrl so tests behave
// identically on every platform.
func newTestDispatcher() *Dispatcher {
	return New(Config{SystemModifier: key.ModCtrl})
}

func mustBind(t *testing.T, d *Dispatcher, b Binding) {
	t.Helper()
	if _, err := d.Bind(b); err != nil {
		t.Fatalf("Bind(%q) error: %v", b.Key, err)
	}
}

func mustWhen(t *testing.T, s string) when.Expression {
	t.Helper()
	expr, err := when.Parse(s)
	if err != nil {
		t.Fatalf("when.Parse(%q) error: %v", s, err)
	}
	return expr
}

func TestHandleSimpleShortcut(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("k", func(key.Event) { fired++ }).WithModifiers("ctrl"))

	if !d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl)) {
		t.Fatal("Handle should report a fired handler")
	}
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}

	// Wrong modifiers never fire: subset, superset, none.
	for _, mods := range []key.Modifier{key.ModNone, key.ModCtrl | key.ModShift, key.ModAlt} {
		if d.Handle(key.NewEvent("k", "KeyK", mods)) {
			t.Errorf("Handle with modifiers %s should not fire", mods)
		}
	}
	if fired != 1 {
		t.Errorf("handler fired %d times total, want 1", fired)
	}
}

func TestHandleSystemModifier(t *testing.T) {
	ctrl := New(Config{SystemModifier: key.ModCtrl})
	meta := New(Config{SystemModifier: key.ModMeta})

	bind := func(d *Dispatcher) *int {
		fired := 0
		if _, err := d.Bind(NewBinding("s", func(key.Event) { fired++ }).WithModifiers("system")); err != nil {
			t.Fatalf("Bind error: %v", err)
		}
		return &fired
	}
	ctrlFired := bind(ctrl)
	metaFired := bind(meta)

	ctrl.Handle(key.NewEvent("s", "KeyS", key.ModCtrl))
	ctrl.Handle(key.NewEvent("s", "KeyS", key.ModMeta))
	if *ctrlFired != 1 {
		t.Errorf("ctrl-system dispatcher fired %d times, want 1", *ctrlFired)
	}

	meta.Handle(key.NewEvent("s", "KeyS", key.ModMeta))
	meta.Handle(key.NewEvent("s", "KeyS", key.ModCtrl))
	if *metaFired != 1 {
		t.Errorf("meta-system dispatcher fired %d times, want 1", *metaFired)
	}
}

func TestHandleLayoutNormalization(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("z", func(key.Event) { fired++ }).WithModifiers("ctrl"))

	// Cyrillic layout: visible 'я' sits on the physical Z position.
	if !d.Handle(key.NewEvent("я", "KeyZ", key.ModCtrl)) {
		t.Fatal("shortcut should fire across layouts via physical code fallback")
	}
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
}

func TestHandleCodeBindingPriority(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	mustBind(t, d, NewBinding("k", func(key.Event) { order = append(order, "key") }).WithModifiers("ctrl"))
	mustBind(t, d, NewBinding("code:KeyK", func(key.Event) { order = append(order, "code") }).WithModifiers("ctrl"))

	if !d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl)) {
		t.Fatal("Handle should fire")
	}

	// Both independent handlers fire; the code-bound record leads.
	if len(order) != 2 || order[0] != "code" || order[1] != "key" {
		t.Errorf("invocation order = %v, want [code key]", order)
	}
}

func TestHandleMultipleHandlersNoShortCircuit(t *testing.T) {
	d := newTestDispatcher()

	fired := []string{}
	mustBind(t, d, NewBinding("a", func(key.Event) { fired = append(fired, "first") }).WithModifiers("ctrl"))
	mustBind(t, d, NewBinding("a", func(key.Event) { fired = append(fired, "second") }).WithModifiers("ctrl"))

	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if len(fired) != 2 || fired[0] != "first" || fired[1] != "second" {
		t.Errorf("fired = %v, want both handlers in registration order", fired)
	}
}

func TestHandleContextScoping(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("v", func(key.Event) { fired++ }).WithWhen(mustWhen(t, "k-mode")))

	// Inactive context: no fire.
	if d.Handle(key.NewEvent("v", "KeyV", key.ModNone)) {
		t.Error("shortcut should not fire outside its context")
	}

	if err := d.Activate("k-mode"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if !d.Handle(key.NewEvent("v", "KeyV", key.ModNone)) {
		t.Error("shortcut should fire inside its context")
	}
	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
}

func TestHandleEndToEndModalScenario(t *testing.T) {
	d := newTestDispatcher()

	h1, h2 := 0, 0
	mustBind(t, d, NewBinding("k", func(key.Event) {
		h1++
		if err := d.Activate("k-mode"); err != nil {
			t.Errorf("Activate from handler: %v", err)
		}
	}).WithModifiers("ctrl"))
	mustBind(t, d, NewBinding("v", func(key.Event) { h2++ }).WithWhen(mustWhen(t, "k-mode")))

	if !d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl)) {
		t.Fatal("ctrl+k should fire")
	}
	if h1 != 1 {
		t.Fatalf("h1 fired %d times, want 1", h1)
	}
	if !d.HasContext("k-mode") {
		t.Fatal("handler's context activation should be visible after dispatch")
	}

	if !d.Handle(key.NewEvent("v", "KeyV", key.ModNone)) {
		t.Fatal("plain v should fire inside k-mode")
	}
	if h2 != 1 {
		t.Fatalf("h2 fired %d times, want 1", h2)
	}

	if err := d.Deactivate("k-mode"); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if d.Handle(key.NewEvent("v", "KeyV", key.ModNone)) {
		t.Error("plain v should not fire after k-mode is deactivated")
	}
	if h2 != 1 {
		t.Errorf("h2 fired %d times total, want 1", h2)
	}
}

func TestRemoveWhereScenario(t *testing.T) {
	d := newTestDispatcher()

	firedFirst, firedSecond := 0, 0
	mustBind(t, d, NewBinding("a", func(key.Event) { firedFirst++ }).
		WithModifiers("ctrl").WithDescription("first"))
	mustBind(t, d, NewBinding("a", func(key.Event) { firedSecond++ }).
		WithModifiers("ctrl").WithDescription("second"))

	removed := d.RemoveWhere(func(info Info) bool {
		return info.Description == "first"
	}, "a")
	if removed != 1 {
		t.Fatalf("RemoveWhere removed %d, want 1", removed)
	}

	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if firedFirst != 0 {
		t.Error("removed handler must not fire")
	}
	if firedSecond != 1 {
		t.Errorf("surviving handler fired %d times, want 1", firedSecond)
	}
}

func TestRemoveByID(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	id, err := d.Bind(NewBinding("x", func(key.Event) { fired++ }).WithModifiers("ctrl"))
	if err != nil {
		t.Fatalf("Bind error: %v", err)
	}

	if !d.Remove(id) {
		t.Fatal("Remove(id) = false, want true")
	}
	if d.Remove(id) {
		t.Error("second Remove(id) = true, want false")
	}
	if d.Handle(key.NewEvent("x", "KeyX", key.ModCtrl)) {
		t.Error("removed shortcut must not fire")
	}
	if fired != 0 {
		t.Errorf("handler fired %d times, want 0", fired)
	}
}

func TestHandleMutationDuringDispatchUsesSnapshot(t *testing.T) {
	d := newTestDispatcher()

	var order []string
	mustBind(t, d, NewBinding("a", func(key.Event) {
		order = append(order, "first")
		// Remove the second record mid-pass: the current pass iterates
		// a snapshot, so "second" still fires this time.
		d.RemoveWhere(func(info Info) bool { return info.Description == "second" }, "")
	}).WithModifiers("ctrl").WithDescription("first"))
	mustBind(t, d, NewBinding("a", func(key.Event) {
		order = append(order, "second")
	}).WithModifiers("ctrl").WithDescription("second"))

	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("first pass order = %v, want [first second] (snapshot semantics)", order)
	}

	// The removal is visible to the next dispatch.
	order = nil
	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if len(order) != 1 || order[0] != "first" {
		t.Errorf("second pass order = %v, want [first]", order)
	}
}

func TestHandleBindDuringDispatchNotObservedMidPass(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("a", func(key.Event) {
		fired++
		if fired == 1 {
			mustBind(t, d, NewBinding("a", func(key.Event) { fired += 100 }).WithModifiers("ctrl"))
		}
	}).WithModifiers("ctrl"))

	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if fired != 1 {
		t.Errorf("fired = %d after first pass, want 1 (new binding not observed mid-pass)", fired)
	}

	d.Handle(key.NewEvent("a", "KeyA", key.ModCtrl))
	if fired != 102 {
		t.Errorf("fired = %d after second pass, want 102", fired)
	}
}

func TestTypingFastPath(t *testing.T) {
	d := newTestDispatcher()

	mustBind(t, d, NewBinding("k", nopHandler).WithModifiers("ctrl"))
	d.Metrics().Reset()

	// Unmodified letters while only modified shortcuts exist: no
	// candidate evaluation at all.
	for _, r := range []string{"h", "e", "l", "l", "o"} {
		if d.Handle(key.NewEvent(r, "Key"+r, key.ModNone)) {
			t.Errorf("plain %q should not fire", r)
		}
	}
	if n := d.Metrics().CandidateEvaluations(); n != 0 {
		t.Errorf("CandidateEvaluations = %d during plain typing, want 0", n)
	}
	if n := d.Metrics().FastPathSkips(); n != 5 {
		t.Errorf("FastPathSkips = %d, want 5", n)
	}

	// Shift alone does not defeat the fast path.
	d.Handle(key.NewEvent("H", "KeyH", key.ModShift))
	if n := d.Metrics().CandidateEvaluations(); n != 0 {
		t.Errorf("CandidateEvaluations = %d after shifted letter, want 0", n)
	}

	// Adding an unmodified shortcut re-enables full processing for the
	// same keystroke.
	fired := 0
	mustBind(t, d, NewBinding("j", func(key.Event) { fired++ }))
	d.Metrics().Reset()
	if !d.Handle(key.NewEvent("j", "KeyJ", key.ModNone)) {
		t.Error("plain shortcut should fire")
	}
	if n := d.Metrics().CandidateEvaluations(); n == 0 {
		t.Error("full evaluation expected once a plain shortcut exists")
	}
	d.Handle(key.NewEvent("h", "KeyH", key.ModNone))
	if n := d.Metrics().FastPathSkips(); n != 0 {
		t.Errorf("FastPathSkips = %d after plain shortcut added, want 0", n)
	}
}

func TestTypingFastPathContextSensitive(t *testing.T) {
	d := newTestDispatcher()

	// The plain shortcut is scoped to an inactive context, so the fast
	// path stays engaged until the context activates.
	mustBind(t, d, NewBinding("v", nopHandler).WithWhen(mustWhen(t, "k-mode")))
	d.Metrics().Reset()

	d.Handle(key.NewEvent("v", "KeyV", key.ModNone))
	if n := d.Metrics().CandidateEvaluations(); n != 0 {
		t.Errorf("CandidateEvaluations = %d with context inactive, want 0", n)
	}

	if err := d.Activate("k-mode"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	if !d.Handle(key.NewEvent("v", "KeyV", key.ModNone)) {
		t.Error("shortcut should fire once its context activates")
	}
}

func TestTypingFastPathSpecialKeys(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("Escape", func(key.Event) { fired++ }))

	// Special keys are excluded from the cache scan but always
	// processed.
	if !d.Handle(key.NewEvent("Escape", "Escape", key.ModNone)) {
		t.Fatal("Escape should always be processed")
	}
	if fired != 1 {
		t.Errorf("Escape handler fired %d times, want 1", fired)
	}

	// The Escape-only table must not have disabled the fast path for
	// ordinary keys.
	d.Metrics().Reset()
	d.Handle(key.NewEvent("a", "KeyA", key.ModNone))
	if n := d.Metrics().FastPathSkips(); n != 1 {
		t.Errorf("FastPathSkips = %d, want 1 (special keys must not disable the fast path)", n)
	}
}

func TestHandleShiftOnlyShortcut(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("a", func(key.Event) { fired++ }).WithModifiers("shift"))

	// A shift-only shortcut counts as unmodified for the typing cache,
	// so shift+a reaches full processing and fires.
	if !d.Handle(key.NewEvent("A", "KeyA", key.ModShift)) {
		t.Fatal("shift+a should fire")
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestHandleSuppressionFlags(t *testing.T) {
	d := newTestDispatcher()

	mustBind(t, d, NewBinding("s", nopHandler).
		WithModifiers("ctrl").WithPreventDefault().WithStopPropagation())
	mustBind(t, d, NewBinding("x", nopHandler).WithModifiers("ctrl"))

	ev := key.NewEvent("s", "KeyS", key.ModCtrl)
	d.Handle(ev)
	if !ev.DefaultPrevented() || !ev.PropagationStopped() {
		t.Error("matched record flags must suppress the event")
	}

	plain := key.NewEvent("x", "KeyX", key.ModCtrl)
	d.Handle(plain)
	if plain.DefaultPrevented() || plain.PropagationStopped() {
		t.Error("records without flags must not suppress the event")
	}
}

func TestBindAllAtomic(t *testing.T) {
	d := newTestDispatcher()

	_, err := d.BindAll(
		NewBinding("a", nopHandler).WithModifiers("ctrl"),
		NewBinding("b", nopHandler).WithModifiers("bogus"),
	)
	if err == nil {
		t.Fatal("BindAll with an invalid binding should fail")
	}

	var bindErr *BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("error = %T, want *BindError", err)
	}
	if bindErr.Index != 1 || bindErr.Key != "b" {
		t.Errorf("BindError = {Index: %d, Key: %q}, want {1, b}", bindErr.Index, bindErr.Key)
	}
	if !errors.Is(err, key.ErrUnknownModifier) {
		t.Errorf("error should wrap ErrUnknownModifier, got %v", err)
	}

	if n := len(d.Bindings()); n != 0 {
		t.Errorf("table holds %d records after failed batch, want 0", n)
	}
}

func TestBindAllSuccess(t *testing.T) {
	d := newTestDispatcher()

	ids, err := d.BindAll(
		NewBinding("a", nopHandler).WithModifiers("ctrl"),
		NewBinding("b", nopHandler).WithModifiers("alt"),
	)
	if err != nil {
		t.Fatalf("BindAll error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("BindAll returned %d ids, want 2", len(ids))
	}
	if len(d.Bindings()) != 2 {
		t.Errorf("Bindings() = %d records, want 2", len(d.Bindings()))
	}
}

func TestHooks(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("k", func(key.Event) { fired++ }).WithModifiers("ctrl"))

	consume := false
	d.AddPreHook(PreDispatchFunc(func(key.Event) bool { return !consume }))
	var outcomes []bool
	d.AddPostHook(PostDispatchFunc(func(_ key.Event, ok bool) { outcomes = append(outcomes, ok) }))

	d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl))
	consume = true
	d.Handle(key.NewEvent("k", "KeyK", key.ModCtrl))

	if fired != 1 {
		t.Errorf("fired = %d, want 1 (pre-hook consumed the second event)", fired)
	}
	if len(outcomes) != 2 || outcomes[0] != true || outcomes[1] != false {
		t.Errorf("post-hook outcomes = %v, want [true false]", outcomes)
	}
}

func TestDispatchersAreIsolated(t *testing.T) {
	a := newTestDispatcher()
	b := newTestDispatcher()

	firedA := 0
	mustBind(t, a, NewBinding("k", func(key.Event) { firedA++ }).WithModifiers("ctrl"))
	if err := a.Activate("editor"); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	if b.Handle(key.NewEvent("k", "KeyK", key.ModCtrl)) {
		t.Error("dispatcher b must not see a's bindings")
	}
	if b.HasContext("editor") {
		t.Error("dispatcher b must not see a's contexts")
	}
	if firedA != 0 {
		t.Errorf("firedA = %d, want 0", firedA)
	}
}

func TestContextValidationAtDispatcher(t *testing.T) {
	d := newTestDispatcher()

	for _, name := range []string{"", "!modal"} {
		if err := d.Activate(name); !errors.Is(err, when.ErrInvalidContextName) {
			t.Errorf("Activate(%q) error = %v, want ErrInvalidContextName", name, err)
		}
		if err := d.ReplaceContexts(name); !errors.Is(err, when.ErrInvalidContextName) {
			t.Errorf("ReplaceContexts(%q) error = %v, want ErrInvalidContextName", name, err)
		}
	}
}

func TestNegationVetoEndToEnd(t *testing.T) {
	d := newTestDispatcher()

	fired := 0
	mustBind(t, d, NewBinding("p", func(key.Event) { fired++ }).
		WithModifiers("ctrl").
		WithWhen(mustWhen(t, "editor || !modal")))

	if err := d.ReplaceContexts("editor", "modal"); err != nil {
		t.Fatalf("ReplaceContexts error: %v", err)
	}
	if d.Handle(key.NewEvent("p", "KeyP", key.ModCtrl)) {
		t.Error("active negated context must veto despite the matching inclusion term")
	}

	if err := d.ReplaceContexts("editor"); err != nil {
		t.Fatalf("ReplaceContexts error: %v", err)
	}
	if !d.Handle(key.NewEvent("p", "KeyP", key.ModCtrl)) {
		t.Error("shortcut should fire once the vetoing context is gone")
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}
