package ports

import (
	"context"

	"geoforge/internal/domain/game"
)

// SnapshotRepository persists the complete durable representation of a
// session. Implementations must treat Save as a full replacement of the
// previous snapshot.
type SnapshotRepository interface {
	Load(ctx context.Context, sessionID string) (game.Snapshot, error)
	Save(ctx context.Context, sessionID string, snap game.Snapshot) error
	Clear(ctx context.Context, sessionID string) error
}

// EventRepository appends and lists the gameplay event log.
type EventRepository interface {
	Append(ctx context.Context, sessionID string, events []game.DomainEvent) error
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]game.DomainEvent, error)
}

// TxManager runs fn inside a storage transaction. The transactional handle
// travels in the context so repositories can pick it up.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
