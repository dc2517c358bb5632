package replay

import (
	"context"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
)

const defaultLimit = 100

// UseCase returns the recent event history of a session, newest first.
type UseCase struct {
	Events ports.EventRepository
}

func NewUseCase(events ports.EventRepository) *UseCase {
	return &UseCase{Events: events}
}

type Request struct {
	SessionID string
	Limit     int
}

type Response struct {
	SessionID string             `json:"session_id"`
	Events    []game.DomainEvent `json:"events"`
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	events, err := uc.Events.ListBySessionID(ctx, req.SessionID, limit)
	if err != nil {
		return nil, err
	}

	return &Response{
		SessionID: req.SessionID,
		Events:    events,
	}, nil
}
