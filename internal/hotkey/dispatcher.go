package hotkey

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/keywire/internal/hotkey/key"
	"github.com/dshills/keywire/internal/hotkey/when"
)

// Config configures a Dispatcher.
type Config struct {
	// SystemModifier is the concrete modifier the virtual System
	// modifier resolves to. Zero value means the platform default.
	SystemModifier key.Modifier
}

// DefaultConfig returns a configuration with the platform default
// system modifier.
func DefaultConfig() Config {
	return Config{SystemModifier: key.DefaultSystemModifier()}
}

// Dispatcher owns a dispatch table and an active context set and
// routes key events to matching shortcut handlers. Instances are fully
// isolated; none of their state is shared or process-global.
type Dispatcher struct {
	mu sync.RWMutex

	config   Config
	table    *table
	contexts *when.ActiveSet

	// hasUnmodifiedActiveShortcut caches whether any context-matching
	// non-special record requires no modifiers beyond optional Shift.
	// Recomputed after every structural change; while false, plain
	// keystrokes skip dispatch entirely.
	hasUnmodifiedActiveShortcut bool

	metrics   *Metrics
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	if config.SystemModifier == key.ModNone {
		config.SystemModifier = key.DefaultSystemModifier()
	}
	contexts, _ := when.NewActiveSet()
	return &Dispatcher{
		config:   config,
		table:    newTable(),
		contexts: contexts,
		metrics:  NewMetrics(),
	}
}

// NewWithDefaults creates a dispatcher with DefaultConfig.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Metrics returns the dispatcher's metrics collector.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// AddPreHook registers a pre-dispatch hook.
func (d *Dispatcher) AddPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, h)
}

// AddPostHook registers a post-dispatch hook.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, h)
}

// Bind validates and registers a shortcut, returning its ID.
func (d *Dispatcher) Bind(b Binding) (uuid.UUID, error) {
	rec, err := b.compile()
	if err != nil {
		return uuid.Nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.table.insert(rec)
	d.recomputeTypingCacheLocked()
	return rec.id, nil
}

// BindAll validates every binding before registering any of them: an
// invalid binding rejects the whole batch and leaves the table
// untouched. The error is a *BindError naming the offender.
func (d *Dispatcher) BindAll(bindings ...Binding) ([]uuid.UUID, error) {
	recs := make([]*record, 0, len(bindings))
	for i, b := range bindings {
		rec, err := b.compile()
		if err != nil {
			return nil, &BindError{Index: i, Key: b.Key, Err: err}
		}
		recs = append(recs, rec)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		d.table.insert(rec)
		ids = append(ids, rec.id)
	}
	d.recomputeTypingCacheLocked()
	return ids, nil
}

// Remove deletes the shortcut with the given registration ID.
// Returns true if a record was removed.
func (d *Dispatcher) Remove(id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.table.removeWhere(func(r *record) bool { return r.id == id }, "")
	if n > 0 {
		d.recomputeTypingCacheLocked()
	}
	return n > 0
}

// RemoveWhere deletes every shortcut matching pred under keys matching
// keyFilter (case-insensitive; empty matches all keys) and returns the
// removed count. Relative order of the surviving records is preserved.
func (d *Dispatcher) RemoveWhere(pred func(Info) bool, keyFilter string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.table.removeWhere(func(r *record) bool { return pred(r.info()) }, keyFilter)
	if n > 0 {
		d.recomputeTypingCacheLocked()
	}
	return n
}

// Bindings lists all registered shortcuts.
func (d *Dispatcher) Bindings() []Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	infos := make([]Info, 0, d.table.size())
	d.table.each(func(_ string, r *record) bool {
		infos = append(infos, r.info())
		return true
	})
	return infos
}

// Activate adds a context name to the active set.
func (d *Dispatcher) Activate(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.contexts.Activate(name); err != nil {
		return err
	}
	d.recomputeTypingCacheLocked()
	return nil
}

// Deactivate removes a context name from the active set.
func (d *Dispatcher) Deactivate(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.contexts.Deactivate(name); err != nil {
		return err
	}
	d.recomputeTypingCacheLocked()
	return nil
}

// ReplaceContexts swaps the whole active set atomically.
func (d *Dispatcher) ReplaceContexts(names ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.contexts.Replace(names...); err != nil {
		return err
	}
	d.recomputeTypingCacheLocked()
	return nil
}

// Contexts returns the active context names in activation order.
func (d *Dispatcher) Contexts() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.contexts.Names()
}

// HasContext returns true if the context is active.
func (d *Dispatcher) HasContext(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.contexts.Has(name)
}

// Handle processes a key event and returns true iff at least one
// handler fired. Handlers run outside the dispatcher lock and may
// mutate the dispatcher; the current pass iterates snapshots, so such
// mutation affects subsequent dispatches only.
func (d *Dispatcher) Handle(ev key.Event) bool {
	d.metrics.RecordEvent()

	d.mu.RLock()
	preHooks := d.preHooks
	d.mu.RUnlock()
	for _, h := range preHooks {
		if !h.PreDispatch(ev) {
			d.finish(ev, false)
			return false
		}
	}

	active := ev.Modifiers()
	code := ev.Code()

	d.mu.RLock()
	if !d.hasUnmodifiedActiveShortcut &&
		!active.Has(key.ModCtrl) && !active.Has(key.ModAlt) && !active.Has(key.ModMeta) &&
		!key.IsSpecialCode(code) {
		d.mu.RUnlock()
		d.metrics.RecordFastPathSkip()
		d.finish(ev, false)
		return false
	}

	// Snapshot candidates and context names. Code-bound records take
	// dispatch priority by appearing first; both lists are evaluated.
	codeRecs := d.table.lookup(key.CodeKey(code))
	keyRecs := d.table.lookup(key.Normalize(ev.Key(), code))
	candidates := make([]*record, 0, len(codeRecs)+len(keyRecs))
	candidates = append(candidates, codeRecs...)
	candidates = append(candidates, keyRecs...)
	ctxNames := d.contexts.Names()
	system := d.config.SystemModifier
	d.mu.RUnlock()

	fired := false
	for _, rec := range candidates {
		d.metrics.RecordEvaluation()
		if !key.Match(active, rec.mods, system) {
			continue
		}
		if !rec.expr.Matches(ctxNames) {
			continue
		}
		rec.handler(ev)
		if rec.preventDefault {
			ev.PreventDefault()
		}
		if rec.stopPropagation {
			ev.StopPropagation()
		}
		d.metrics.RecordHandlerFired()
		fired = true
	}

	if fired {
		d.metrics.RecordDispatch()
	}
	d.finish(ev, fired)
	return fired
}

// finish runs the post-dispatch hooks.
func (d *Dispatcher) finish(ev key.Event, fired bool) {
	d.mu.RLock()
	postHooks := d.postHooks
	d.mu.RUnlock()
	for _, h := range postHooks {
		h.PostDispatch(ev, fired)
	}
}

// recomputeTypingCacheLocked rescans the table for a context-matching
// record on a non-special key that requires no modifiers beyond
// optional Shift. Caller must hold the write lock.
func (d *Dispatcher) recomputeTypingCacheLocked() {
	names := d.contexts.Names()
	system := d.config.SystemModifier

	d.hasUnmodifiedActiveShortcut = false
	d.table.each(func(k string, r *record) bool {
		if isSpecialEntry(k) {
			return true
		}
		if !r.mods.Resolve(system).Without(key.ModShift).IsEmpty() {
			return true
		}
		if !r.expr.Matches(names) {
			return true
		}
		d.hasUnmodifiedActiveShortcut = true
		return false
	})
}

// isSpecialEntry reports whether a dispatch table key addresses a
// special key, in either addressing mode.
func isSpecialEntry(k string) bool {
	if key.IsCodeKey(k) {
		return key.IsSpecialCode(key.TrimCodeKey(k))
	}
	return key.IsSpecialCode(k)
}
