// Package notify collects duration warnings across a register. Entries are
// deduplicated by the record's current sequence-number value and carry a
// full field snapshot taken at raise time, so later record edits do not
// alter what a warning displays.
package notify

import (
	"sync"

	"github.com/opsdesk/registerdesk/pkg/types"
)

// Field is one column of a warning snapshot.
type Field struct {
	Title string
	Value string
}

// Entry is one active duration warning.
type Entry struct {
	// Seq is the dedup key: the sequence-number field's display value at
	// raise time. Two records sharing a sno value collide by design.
	Seq     string
	Days    int
	Invalid bool
	Fields  []Field
}

// Aggregator holds the active warnings for one register in table order.
type Aggregator struct {
	mu      sync.Mutex
	entries []Entry
	index   map[string]int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{index: make(map[string]int)}
}

// Snapshot builds a warning entry from a record's current visible values.
func Snapshot(rec *types.Record, s types.Schema) Entry {
	visible := rec.VisibleValues(s)
	fields := make([]Field, 0, len(visible))
	for i, c := range s.Columns {
		fields = append(fields, Field{Title: c.Title, Value: visible[i]})
	}
	days, _ := types.ParseDurationDays(rec.Duration)
	return Entry{
		Seq:     rec.Seq(),
		Days:    days,
		Invalid: rec.Duration == types.DurationInvalid,
		Fields:  fields,
	}
}

// Raise adds a warning entry. An entry with the same sequence-number
// identity is replaced in place, so the last record raised for a given sno
// wins while the count stays at one.
func (a *Aggregator) Raise(e Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i, ok := a.index[e.Seq]; ok {
		a.entries[i] = e
		return
	}
	a.index[e.Seq] = len(a.entries)
	a.entries = append(a.entries, e)
}

// RescanAll clears all entries, recomputes every record in table order, and
// re-raises the ones in a warning state. This is the path that removes
// stale entries; running it twice with no intervening edits yields an
// identical aggregator state.
func (a *Aggregator) RescanAll(records []*types.Record, s types.Schema, warnDays int) {
	a.Clear()
	for _, rec := range records {
		types.Recompute(rec, s, warnDays)
		if rec.Warning {
			a.Raise(Snapshot(rec, s))
		}
	}
}

// Clear drops all entries.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
	a.index = make(map[string]int)
}

// Count returns the number of currently held warnings. Zero hides the badge.
func (a *Aggregator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Entries returns a copy of the active warnings in table order.
func (a *Aggregator) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}
