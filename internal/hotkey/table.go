package hotkey

import "strings"

// table maps canonical dispatch keys to their records in registration
// order. Not safe for concurrent use; the dispatcher serializes access.
type table struct {
	records map[string][]*record
}

func newTable() *table {
	return &table{records: make(map[string][]*record)}
}

// insert appends a record under its key, preserving arrival order.
func (t *table) insert(r *record) {
	t.records[r.dispatchKey] = append(t.records[r.dispatchKey], r)
}

// lookup returns the current list for an exact key, or nil. The
// returned slice must not be mutated; structural changes always
// install fresh slices, so callers may hold it as a snapshot.
func (t *table) lookup(k string) []*record {
	return t.records[k]
}

// removeWhere drops every record matching pred under keys matching
// keyFilter (case-insensitive; empty matches all keys) and returns the
// number removed. Relative order of the retained records is preserved.
// Retained records are filtered into fresh slices so snapshots held by
// an in-flight dispatch are unaffected.
func (t *table) removeWhere(pred func(*record) bool, keyFilter string) int {
	removed := 0
	for k, recs := range t.records {
		if keyFilter != "" && !strings.EqualFold(k, keyFilter) {
			continue
		}
		kept := make([]*record, 0, len(recs))
		for _, r := range recs {
			if pred(r) {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == len(recs) {
			continue
		}
		if len(kept) == 0 {
			delete(t.records, k)
		} else {
			t.records[k] = kept
		}
	}
	return removed
}

// each visits every record until fn returns false.
func (t *table) each(fn func(k string, r *record) bool) {
	for k, recs := range t.records {
		for _, r := range recs {
			if !fn(k, r) {
				return
			}
		}
	}
}

// size returns the total number of stored records.
func (t *table) size() int {
	n := 0
	for _, recs := range t.records {
		n += len(recs)
	}
	return n
}
