package memory

import (
	"context"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Load(_ context.Context, sessionID string) (game.Snapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	snap, ok := r.store.snapshots[sessionID]
	if !ok {
		return game.Snapshot{}, ports.ErrNotFound
	}
	return cloneSnapshot(snap), nil
}

func (r SnapshotRepo) Save(_ context.Context, sessionID string, snap game.Snapshot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.snapshots[sessionID] = cloneSnapshot(snap)
	return nil
}

func (r SnapshotRepo) Clear(_ context.Context, sessionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.snapshots, sessionID)
	delete(r.store.events, sessionID)
	return nil
}
