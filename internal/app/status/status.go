package status

import (
	"context"

	"geoforge/internal/app/engine"
)

// Provider is the live session the use case reports on.
type Provider interface {
	Status() engine.Status
}

// UseCase returns the session summary for the renderer's status surface.
type UseCase struct {
	Session Provider
}

func NewUseCase(session Provider) *UseCase {
	return &UseCase{Session: session}
}

func (uc *UseCase) Execute(_ context.Context) engine.Status {
	return uc.Session.Status()
}
