package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"
)

var ErrInvalidMode = errors.New("invalid movement mode")

// Config carries the gameplay tuning for one session.
type Config struct {
	SessionID         string
	Grid              grid.Grid
	Generator         game.Generator
	InteractionRadius int
	ViewportMargin    int
	WinTarget         game.TokenValue
	DefaultStart      grid.Cell
	DefaultMode       game.MovementMode
}

// Deps are the engine's outbound ports. Snapshots is the only required
// one; everything else degrades to a no-op when nil.
type Deps struct {
	Snapshots ports.SnapshotRepository
	Events    ports.EventRepository
	Tx        ports.TxManager
	Metrics   ports.InteractionMetrics
	Now       func() time.Time
}

// Engine owns the mutable session state: player coordinate, the one-slot
// hand, the sparse override store, the movement mode, and the transient
// active set. All mutations happen under one mutex; HTTP handlers and the
// tracked movement callback are the only entry points, so this gives the
// single-logical-thread model the gameplay rules assume.
//
// Persistence is best-effort: a failed save is counted and skipped, and
// the in-memory state stays authoritative for the current run.
type Engine struct {
	mu   sync.Mutex
	cfg  Config
	deps Deps

	player    grid.Cell
	held      game.TokenValue
	mode      game.MovementMode
	overrides *game.OverrideStore
	active    game.ActiveSet
}

func New(cfg Config, deps Deps) *Engine {
	if cfg.InteractionRadius <= 0 {
		cfg.InteractionRadius = 1
	}
	if cfg.ViewportMargin < 0 {
		cfg.ViewportMargin = 0
	}
	if !game.ValidMode(cfg.DefaultMode) {
		cfg.DefaultMode = game.ModeManual
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Engine{
		cfg:       cfg,
		deps:      deps,
		player:    cfg.DefaultStart,
		held:      game.Empty,
		mode:      cfg.DefaultMode,
		overrides: game.NewOverrideStore(cfg.Generator),
		active:    game.ActiveSet{},
	}
}

// Restore loads the persisted snapshot, falling back to defaults when the
// snapshot is missing or unusable. It returns whether a snapshot was
// applied; the engine is playable either way.
func (e *Engine) Restore(ctx context.Context) bool {
	if e.deps.Snapshots == nil {
		return false
	}
	snap, err := e.deps.Snapshots.Load(ctx, e.cfg.SessionID)
	if err != nil {
		return false
	}
	if !game.ValidMode(snap.Mode) || snap.HeldValue() < game.Empty {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.player = snap.Player
	e.held = snap.HeldValue()
	e.mode = snap.Mode
	e.overrides.Restore(snap.Overrides)
	return true
}

// ClickResult reports one resolved cell interaction. Cell always carries
// the value after the interaction so the renderer can refresh it.
type ClickResult struct {
	Signal      game.Signal     `json:"signal"`
	Cell        game.CellView   `json:"cell"`
	Held        game.TokenValue `json:"held"`
	GoalReached bool            `json:"goal_reached,omitempty"`
}

// ClickCell applies the pick-up/drop/craft transition for one clicked
// cell. Out-of-range and invalid transitions leave all state untouched.
func (e *Engine) ClickCell(ctx context.Context, cell grid.Cell) ClickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !grid.WithinRadius(cell, e.player, e.cfg.InteractionRadius) {
		e.recordInteraction(game.SignalOutOfRange)
		return ClickResult{
			Signal: game.SignalOutOfRange,
			Cell:   game.CellView{Cell: cell, Value: e.overrides.Get(cell)},
			Held:   e.held,
		}
	}

	out := game.ResolveInteraction(e.held, e.overrides.Get(cell))
	result := ClickResult{
		Signal: out.Signal,
		Cell:   game.CellView{Cell: cell, Value: out.NewCellValue},
		Held:   out.NewHeld,
	}
	if !out.Signal.Mutating() {
		e.recordInteraction(out.Signal)
		return result
	}

	e.overrides.Set(cell, out.NewCellValue)
	e.held = out.NewHeld

	events := []game.DomainEvent{e.interactionEvent(out.Signal, cell)}
	if out.Signal == game.SignalCrafted && e.cfg.WinTarget > game.Empty && e.held >= e.cfg.WinTarget {
		result.GoalReached = true
		events = append(events, game.DomainEvent{
			Type:       game.EventGoalReached,
			OccurredAt: e.deps.Now(),
			Payload:    map[string]any{"held": int64(e.held), "target": int64(e.cfg.WinTarget)},
		})
	}
	e.persistLocked(ctx, events)
	e.recordInteraction(out.Signal)
	return result
}

// MoveTo applies a coordinate update from the active movement source.
// Duplicate coordinates are dropped so an over-eager feed cannot cause
// state churn.
func (e *Engine) MoveTo(ctx context.Context, cell grid.Cell) grid.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cell == e.player {
		return e.player
	}
	from := e.player
	e.player = cell
	e.persistLocked(ctx, []game.DomainEvent{{
		Type:       game.EventPlayerMoved,
		OccurredAt: e.deps.Now(),
		Payload: map[string]any{
			"from": from.Key(),
			"to":   cell.Key(),
		},
	}})
	return e.player
}

// Player returns the current player cell.
func (e *Engine) Player() grid.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player
}

// RecomputeViewport diffs the cell rectangle covering the visible window
// (plus margin) against the previous active set. It never writes to the
// override store: scrolling a modified cell out of view and back must not
// reset it.
func (e *Engine) RecomputeViewport(_ context.Context, w grid.Window) game.ViewportDiff {
	e.mu.Lock()
	defer e.mu.Unlock()

	rect := e.cfg.Grid.RectForWindow(w, e.cfg.ViewportMargin)
	next, diff := game.DiffViewport(e.active, rect, e.overrides)
	e.active = next
	return diff
}

// SetMode switches the persisted movement mode. Source lifecycle (stopping
// the old feed, starting the new one) belongs to the movement controller.
func (e *Engine) SetMode(ctx context.Context, mode game.MovementMode) error {
	if !game.ValidMode(mode) {
		return ErrInvalidMode
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if mode == e.mode {
		return nil
	}
	e.mode = mode
	e.persistLocked(ctx, nil)
	return nil
}

// Mode returns the current movement mode.
func (e *Engine) Mode() game.MovementMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Reset erases the stored snapshot and reinitializes all in-memory state
// to defaults. The event log keeps a reset marker so replays show the
// boundary.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deps.Snapshots != nil {
		if err := e.deps.Snapshots.Clear(ctx, e.cfg.SessionID); err != nil {
			e.recordPersistenceSkip()
		}
	}
	if e.deps.Events != nil {
		err := e.deps.Events.Append(ctx, e.cfg.SessionID, []game.DomainEvent{{
			Type:       game.EventSessionReset,
			OccurredAt: e.deps.Now(),
			Payload:    map[string]any{},
		}})
		if err != nil {
			e.recordPersistenceSkip()
		}
	}

	e.player = e.cfg.DefaultStart
	e.held = game.Empty
	e.mode = e.cfg.DefaultMode
	e.overrides = game.NewOverrideStore(e.cfg.Generator)
	e.active = game.ActiveSet{}
}

// Status is the session summary served to the renderer's status line.
type Status struct {
	SessionID     string            `json:"session_id"`
	Player        grid.Cell         `json:"player"`
	Held          game.TokenValue   `json:"held"`
	Mode          game.MovementMode `json:"movement_mode"`
	OverrideCount int               `json:"override_count"`
	ActiveCells   int               `json:"active_cells"`
	GoalReached   bool              `json:"goal_reached"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		SessionID:     e.cfg.SessionID,
		Player:        e.player,
		Held:          e.held,
		Mode:          e.mode,
		OverrideCount: e.overrides.Len(),
		ActiveCells:   len(e.active),
		GoalReached:   e.cfg.WinTarget > game.Empty && e.held >= e.cfg.WinTarget,
	}
}

// Snapshot returns the current durable representation.
func (e *Engine) Snapshot() game.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() game.Snapshot {
	snap := game.Snapshot{
		Player:    e.player,
		Overrides: e.overrides.Entries(),
		Mode:      e.mode,
	}
	if e.held != game.Empty {
		held := e.held
		snap.Held = &held
	}
	return snap
}

func (e *Engine) interactionEvent(signal game.Signal, cell grid.Cell) game.DomainEvent {
	eventType := ""
	switch signal {
	case game.SignalPickedUp:
		eventType = game.EventTokenPickedUp
	case game.SignalDropped:
		eventType = game.EventTokenDropped
	case game.SignalCrafted:
		eventType = game.EventTokensCrafted
	}
	return game.DomainEvent{
		Type:       eventType,
		OccurredAt: e.deps.Now(),
		Payload: map[string]any{
			"cell": cell.Key(),
			"held": int64(e.held),
		},
	}
}

// persistLocked writes the snapshot (and any events) best-effort. Failures
// are counted and swallowed: gameplay never stalls on storage.
func (e *Engine) persistLocked(ctx context.Context, events []game.DomainEvent) {
	if e.deps.Snapshots == nil {
		return
	}
	snap := e.snapshotLocked()
	save := func(txCtx context.Context) error {
		if err := e.deps.Snapshots.Save(txCtx, e.cfg.SessionID, snap); err != nil {
			return err
		}
		if e.deps.Events != nil && len(events) > 0 {
			return e.deps.Events.Append(txCtx, e.cfg.SessionID, events)
		}
		return nil
	}

	var err error
	if e.deps.Tx != nil {
		err = e.deps.Tx.RunInTx(ctx, save)
	} else {
		err = save(ctx)
	}
	if err != nil {
		e.recordPersistenceSkip()
	}
}

func (e *Engine) recordInteraction(signal game.Signal) {
	if e.deps.Metrics != nil {
		e.deps.Metrics.RecordInteraction(signal)
	}
}

func (e *Engine) recordPersistenceSkip() {
	if e.deps.Metrics != nil {
		e.deps.Metrics.RecordPersistenceSkip()
	}
}
