package game

import (
	"sort"

	"geoforge/internal/domain/grid"
)

// OverrideStore maps cells to token values, storing only cells whose
// current value differs from their procedural base. It is the single
// source of truth for what the player changed, independent of what is
// currently rendered; visibility code must never write to it.
type OverrideStore struct {
	gen     Generator
	entries map[grid.Cell]TokenValue
}

func NewOverrideStore(gen Generator) *OverrideStore {
	return &OverrideStore{
		gen:     gen,
		entries: make(map[grid.Cell]TokenValue),
	}
}

// Get returns the stored override for c, falling back to the procedural
// base value when no override exists.
func (s *OverrideStore) Get(c grid.Cell) TokenValue {
	if v, ok := s.entries[c]; ok {
		return v
	}
	return s.gen.BaseValue(c)
}

// Set records v as the current value of c. Setting a cell back to its base
// value removes the entry instead of storing redundant data, so the store
// stays minimal.
func (s *OverrideStore) Set(c grid.Cell, v TokenValue) {
	if v == s.gen.BaseValue(c) {
		delete(s.entries, c)
		return
	}
	s.entries[c] = v
}

// Len returns the number of cells currently overridden.
func (s *OverrideStore) Len() int {
	return len(s.entries)
}

// Entries returns the overrides in deterministic row/col order for
// serialization.
func (s *OverrideStore) Entries() []OverrideEntry {
	out := make([]OverrideEntry, 0, len(s.entries))
	for c, v := range s.entries {
		out = append(out, OverrideEntry{Cell: c, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Row != out[j].Cell.Row {
			return out[i].Cell.Row < out[j].Cell.Row
		}
		return out[i].Cell.Col < out[j].Cell.Col
	})
	return out
}

// Restore replaces the store contents with the given entries. Entries that
// match their base value are dropped so the minimality invariant holds even
// when the persisted data is stale or hand-edited.
func (s *OverrideStore) Restore(entries []OverrideEntry) {
	s.entries = make(map[grid.Cell]TokenValue, len(entries))
	for _, e := range entries {
		if e.Value == s.gen.BaseValue(e.Cell) {
			continue
		}
		s.entries[e.Cell] = e.Value
	}
}
