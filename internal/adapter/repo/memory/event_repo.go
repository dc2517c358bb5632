package memory

import (
	"context"

	"geoforge/internal/domain/game"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []game.DomainEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySessionID returns up to limit events, newest first. An unknown
// session yields an empty slice rather than an error so a fresh session
// can be replayed before its first action.
func (r EventRepo) ListBySessionID(_ context.Context, sessionID string, limit int) ([]game.DomainEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := r.store.events[sessionID]
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]game.DomainEvent, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out, nil
}
