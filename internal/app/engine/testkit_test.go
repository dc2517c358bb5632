package engine

import (
	"context"
	"errors"

	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"
)

type fixedRoller struct {
	low map[grid.Cell]bool
}

func (r fixedRoller) Roll(c grid.Cell) float64 {
	if r.low[c] {
		return 0
	}
	return 0.99
}

func generatorWithTokensAt(cells ...grid.Cell) game.Generator {
	low := make(map[grid.Cell]bool, len(cells))
	for _, c := range cells {
		low[c] = true
	}
	return game.Generator{Roller: fixedRoller{low: low}, SpawnChance: 0.2}
}

type stubSnapshotRepo struct {
	bySession map[string]game.Snapshot
	saveErr   error
	loadErr   error
	saves     int
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{bySession: map[string]game.Snapshot{}}
}

func (r *stubSnapshotRepo) Load(_ context.Context, sessionID string) (game.Snapshot, error) {
	if r.loadErr != nil {
		return game.Snapshot{}, r.loadErr
	}
	snap, ok := r.bySession[sessionID]
	if !ok {
		return game.Snapshot{}, errNotFound
	}
	return snap, nil
}

func (r *stubSnapshotRepo) Save(_ context.Context, sessionID string, snap game.Snapshot) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.bySession[sessionID] = snap
	return nil
}

func (r *stubSnapshotRepo) Clear(_ context.Context, sessionID string) error {
	delete(r.bySession, sessionID)
	return nil
}

var errNotFound = errors.New("not found")

type stubEventRepo struct {
	events []game.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []game.DomainEvent) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListBySessionID(_ context.Context, _ string, limit int) ([]game.DomainEvent, error) {
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]game.DomainEvent, limit)
	copy(out, r.events[:limit])
	return out, nil
}

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubMetrics struct {
	bySignal         map[game.Signal]int
	persistenceSkips int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{bySignal: map[game.Signal]int{}}
}

func (m *stubMetrics) RecordInteraction(signal game.Signal) {
	m.bySignal[signal]++
}

func (m *stubMetrics) RecordPersistenceSkip() {
	m.persistenceSkips++
}

func testConfig(gen game.Generator) Config {
	return Config{
		SessionID:         "session-1",
		Grid:              grid.Grid{CellSize: 0.0005},
		Generator:         gen,
		InteractionRadius: 1,
		ViewportMargin:    1,
		WinTarget:         4,
		DefaultStart:      grid.Cell{Row: 0, Col: 0},
		DefaultMode:       game.ModeManual,
	}
}
