package hotkey

import (
	"sync"
	"time"
)

// Metrics collects dispatch statistics. CandidateEvaluations is the
// instrumentation point for the typing fast path: while the fast path
// is engaged, unmodified keystrokes must leave it untouched.
type Metrics struct {
	mu sync.RWMutex

	eventsSeen           uint64
	fastPathSkips        uint64
	candidateEvaluations uint64
	handlersFired        uint64
	dispatches           uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordEvent counts an incoming event.
func (m *Metrics) RecordEvent() {
	m.mu.Lock()
	m.eventsSeen++
	m.mu.Unlock()
}

// RecordFastPathSkip counts an event rejected by the typing fast path.
func (m *Metrics) RecordFastPathSkip() {
	m.mu.Lock()
	m.fastPathSkips++
	m.mu.Unlock()
}

// RecordEvaluation counts one candidate's modifier/context evaluation.
func (m *Metrics) RecordEvaluation() {
	m.mu.Lock()
	m.candidateEvaluations++
	m.mu.Unlock()
}

// RecordHandlerFired counts one handler invocation.
func (m *Metrics) RecordHandlerFired() {
	m.mu.Lock()
	m.handlersFired++
	m.mu.Unlock()
}

// RecordDispatch counts an event for which at least one handler fired.
func (m *Metrics) RecordDispatch() {
	m.mu.Lock()
	m.dispatches++
	m.mu.Unlock()
}

// EventsSeen returns the number of events handed to the dispatcher.
func (m *Metrics) EventsSeen() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.eventsSeen
}

// FastPathSkips returns the number of events the typing fast path
// rejected without lookup.
func (m *Metrics) FastPathSkips() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fastPathSkips
}

// CandidateEvaluations returns the number of per-candidate
// modifier/context evaluations performed.
func (m *Metrics) CandidateEvaluations() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.candidateEvaluations
}

// HandlersFired returns the number of handler invocations.
func (m *Metrics) HandlersFired() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handlersFired
}

// Dispatches returns the number of events with at least one match.
func (m *Metrics) Dispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dispatches
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsSeen = 0
	m.fastPathSkips = 0
	m.candidateEvaluations = 0
	m.handlersFired = 0
	m.dispatches = 0
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	EventsSeen           uint64
	FastPathSkips        uint64
	CandidateEvaluations uint64
	HandlersFired        uint64
	Dispatches           uint64
	Timestamp            time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		EventsSeen:           m.eventsSeen,
		FastPathSkips:        m.fastPathSkips,
		CandidateEvaluations: m.candidateEvaluations,
		HandlersFired:        m.handlersFired,
		Dispatches:           m.dispatches,
		Timestamp:            time.Now(),
	}
}
