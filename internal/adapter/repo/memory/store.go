package memory

import (
	"sync"

	"geoforge/internal/domain/game"
)

// Store is the process-local backing for the memory repos. It is the
// default persistence tier when no database is configured; everything
// is lost on restart, which is acceptable for a single session played
// in one process.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]game.Snapshot
	events    map[string][]game.DomainEvent
}

func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]game.Snapshot),
		events:    make(map[string][]game.DomainEvent),
	}
}

// SeedSnapshot installs a snapshot directly, bypassing the repo API.
func (s *Store) SeedSnapshot(sessionID string, snap game.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[sessionID] = cloneSnapshot(snap)
}

func cloneSnapshot(snap game.Snapshot) game.Snapshot {
	out := snap
	if snap.Held != nil {
		held := *snap.Held
		out.Held = &held
	}
	out.Overrides = make([]game.OverrideEntry, len(snap.Overrides))
	copy(out.Overrides, snap.Overrides)
	return out
}
