package movement

import (
	"errors"
	"sync"

	"geoforge/internal/domain/grid"
)

var ErrUnknownDirection = errors.New("unknown direction")

// Directions accepted by Manual.Step.
const (
	DirNorth = "north"
	DirSouth = "south"
	DirEast  = "east"
	DirWest  = "west"
)

// Manual is the discrete stepping source. It reads the authoritative
// player position through pos on every step, so switching back from
// tracked mode needs no resynchronization.
type Manual struct {
	mu      sync.Mutex
	pos     func() grid.Cell
	emit    MoveFunc
	started bool
}

func NewManual(pos func() grid.Cell, emit MoveFunc) *Manual {
	return &Manual{pos: pos, emit: emit}
}

func (m *Manual) Name() string { return "manual" }

func (m *Manual) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
}

// Step emits the neighbor of the current position in the given direction.
// Steps on a stopped source are dropped.
func (m *Manual) Step(direction string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return nil
	}

	cur := m.pos()
	switch direction {
	case DirNorth:
		cur.Row++
	case DirSouth:
		cur.Row--
	case DirEast:
		cur.Col++
	case DirWest:
		cur.Col--
	default:
		return ErrUnknownDirection
	}
	m.emit(cur)
	return nil
}
