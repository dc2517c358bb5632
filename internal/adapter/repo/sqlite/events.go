package sqliterepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"geoforge/internal/domain/game"
)

func (s *Store) Append(ctx context.Context, sessionID string, events []game.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		payload, _ := json.Marshal(e.Payload)
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO session_events (id, session_id, type, occurred_at, payload)
			 VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), sessionID, e.Type,
			e.OccurredAt.UTC().Format(time.RFC3339Nano), string(payload))
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]game.DomainEvent, error) {
	type row struct {
		Type       string `db:"type"`
		OccurredAt string `db:"occurred_at"`
		Payload    string `db:"payload"`
	}

	rows := []row{}
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT type, occurred_at, payload FROM session_events
		 WHERE session_id = ?
		 ORDER BY occurred_at DESC, rowid DESC
		 LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]game.DomainEvent, 0, len(rows))
	for _, r := range rows {
		at, err := time.Parse(time.RFC3339Nano, r.OccurredAt)
		if err != nil {
			return nil, err
		}
		var payload map[string]any
		if r.Payload != "" {
			_ = json.Unmarshal([]byte(r.Payload), &payload)
		}
		out = append(out, game.DomainEvent{
			Type:       r.Type,
			OccurredAt: at,
			Payload:    payload,
		})
	}
	return out, nil
}
