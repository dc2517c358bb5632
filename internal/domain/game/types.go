package game

import (
	"time"

	"geoforge/internal/domain/grid"
)

// TokenValue is the content of a cell or of the hand. Zero means empty;
// positive values are powers of two produced by repeated crafting.
type TokenValue int64

// Empty is the value of a cell with no token and of an empty hand.
const Empty TokenValue = 0

// MovementMode selects which movement source drives the player coordinate.
type MovementMode string

const (
	ModeManual  MovementMode = "manual"
	ModeTracked MovementMode = "tracked"
)

// ValidMode reports whether m is one of the two supported modes.
func ValidMode(m MovementMode) bool {
	return m == ModeManual || m == ModeTracked
}

// Signal classifies the outcome of a single cell interaction.
type Signal string

const (
	SignalPickedUp        Signal = "picked_up"
	SignalDropped         Signal = "dropped"
	SignalCrafted         Signal = "crafted"
	SignalOutOfRange      Signal = "out_of_range"
	SignalNothingToPickUp Signal = "nothing_to_pick_up"
	SignalValueMismatch   Signal = "value_mismatch"
)

// Mutating reports whether the signal corresponds to a branch that changed
// cell or hand state.
func (s Signal) Mutating() bool {
	switch s {
	case SignalPickedUp, SignalDropped, SignalCrafted:
		return true
	default:
		return false
	}
}

// OverrideEntry is one persisted deviation from a cell's base value.
type OverrideEntry struct {
	Cell  grid.Cell  `json:"cell"`
	Value TokenValue `json:"value"`
}

// Snapshot is the complete durable representation of a session. The active
// set is deliberately absent: visibility is derived state and is never
// persisted.
type Snapshot struct {
	Player    grid.Cell       `json:"player"`
	Held      *TokenValue     `json:"held,omitempty"`
	Overrides []OverrideEntry `json:"overrides"`
	Mode      MovementMode    `json:"movement_mode"`
}

// HeldValue returns the hand content with nil mapped to Empty.
func (s Snapshot) HeldValue() TokenValue {
	if s.Held == nil {
		return Empty
	}
	return *s.Held
}

// DomainEvent records one gameplay fact for the replay log.
type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventTokenPickedUp = "token_picked_up"
	EventTokenDropped  = "token_dropped"
	EventTokensCrafted = "tokens_crafted"
	EventPlayerMoved   = "player_moved"
	EventGoalReached   = "goal_reached"
	EventSessionReset  = "session_reset"
)
