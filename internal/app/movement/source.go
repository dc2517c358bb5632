package movement

import "geoforge/internal/domain/grid"

// MoveFunc receives coordinate updates from a movement source.
type MoveFunc func(cell grid.Cell)

// Source drives the player coordinate. Exactly one source is active at a
// time; the controller stops the old one before starting the new one.
type Source interface {
	Start() error
	Stop()
	Name() string
}
