package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
)

type stubEventRepo struct {
	bySession map[string][]game.DomainEvent
	gotLimit  int
}

func (r *stubEventRepo) Append(ctx context.Context, sessionID string, events []game.DomainEvent) error {
	if r.bySession == nil {
		r.bySession = make(map[string][]game.DomainEvent)
	}
	r.bySession[sessionID] = append(r.bySession[sessionID], events...)
	return nil
}

func (r *stubEventRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]game.DomainEvent, error) {
	r.gotLimit = limit
	events, ok := r.bySession[sessionID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]game.DomainEvent, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out, nil
}

func TestExecute_ReturnsNewestFirst(t *testing.T) {
	repo := &stubEventRepo{}
	base := time.Unix(1700000000, 0)
	for i := 0; i < 3; i++ {
		repo.Append(context.Background(), "s1", []game.DomainEvent{{
			Type:       game.EventPlayerMoved,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
			Payload:    map[string]any{"seq": i},
		}})
	}

	uc := NewUseCase(repo)
	resp, err := uc.Execute(context.Background(), Request{SessionID: "s1", Limit: 2})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Events))
	}
	if resp.Events[0].Payload["seq"] != 2 || resp.Events[1].Payload["seq"] != 1 {
		t.Fatalf("events not newest first: %+v", resp.Events)
	}
}

func TestExecute_DefaultsLimit(t *testing.T) {
	repo := &stubEventRepo{bySession: map[string][]game.DomainEvent{"s1": {}}}
	uc := NewUseCase(repo)
	if _, err := uc.Execute(context.Background(), Request{SessionID: "s1"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if repo.gotLimit != defaultLimit {
		t.Fatalf("limit = %d, want %d", repo.gotLimit, defaultLimit)
	}
}

func TestExecute_UnknownSession(t *testing.T) {
	uc := NewUseCase(&stubEventRepo{})
	_, err := uc.Execute(context.Background(), Request{SessionID: "missing"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
