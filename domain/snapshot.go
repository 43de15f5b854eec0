package domain

// DefaultCategories seeds a fresh installation. The set is user-extensible:
// adding a timer with a new category label registers it.
var DefaultCategories = []string{"Workout", "Study", "Break", "Other"}

// Snapshot is the complete persisted state: every timer, the append-only
// completion history, and the known category labels. It is serialized whole
// as one JSON document under a single storage key.
type Snapshot struct {
	Timers     []Timer        `json:"timers"`
	History    []HistoryEntry `json:"history"`
	Categories []string       `json:"categories"`
}

// DefaultSnapshot returns the empty state used on first start or when the
// persisted payload cannot be read.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Timers:     []Timer{},
		History:    []HistoryEntry{},
		Categories: append([]string(nil), DefaultCategories...),
	}
}

// Clone returns a deep copy so callers can never mutate store internals
// through a snapshot they were handed.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Timers:     make([]Timer, len(s.Timers)),
		History:    make([]HistoryEntry, len(s.History)),
		Categories: make([]string, len(s.Categories)),
	}
	copy(out.Timers, s.Timers)
	copy(out.History, s.History)
	copy(out.Categories, s.Categories)
	return out
}

// Normalized enforces timer invariants on every entry and guarantees the
// category list is non-empty. Used when loading persisted state that may
// predate the current rules.
func (s Snapshot) Normalized() Snapshot {
	out := s.Clone()
	for i := range out.Timers {
		out.Timers[i] = out.Timers[i].Normalized()
	}
	if len(out.Categories) == 0 {
		out.Categories = append([]string(nil), DefaultCategories...)
	}
	return out
}

// HasCategory reports whether the label is already registered.
func (s Snapshot) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}
