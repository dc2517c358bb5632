package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
)

// Load reads and validates the session document. A document that fails
// decompression or schema validation is reported as absent: the caller
// starts the session from defaults rather than crashing on a file
// written by an incompatible build.
func (s *Store) Load(ctx context.Context, sessionID string) (game.Snapshot, error) {
	var blob []byte
	err := s.conn.GetContext(ctx, &blob,
		`SELECT doc FROM session_docs WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, ports.ErrNotFound
	}
	if err != nil {
		return game.Snapshot{}, err
	}

	snap, err := decodeDoc(blob)
	if err != nil {
		return game.Snapshot{}, ports.ErrNotFound
	}
	return snap, nil
}

func (s *Store) Save(ctx context.Context, sessionID string, snap game.Snapshot) error {
	blob, err := encodeDoc(snap)
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO session_docs (session_id, doc, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		sessionID, blob, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.conn.ExecContext(ctx,
		`DELETE FROM session_events WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx,
		`DELETE FROM session_docs WHERE session_id = ?`, sessionID)
	return err
}
