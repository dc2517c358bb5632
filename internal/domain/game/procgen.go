package game

import "geoforge/internal/domain/grid"

// Roller is the opaque deterministic oracle behind procedural generation.
// Implementations must return a value in [0,1) that depends on the cell
// alone: no call-order, call-count, or clock dependence.
type Roller interface {
	Roll(c grid.Cell) float64
}

// Generator derives the never-changing base token value of a cell.
type Generator struct {
	Roller      Roller
	SpawnChance float64
}

// BaseValue returns 1 when the cell rolls under the spawn chance, else 0.
// Same cell, same answer, for the lifetime of the system and across
// restarts.
func (g Generator) BaseValue(c grid.Cell) TokenValue {
	if g.Roller == nil {
		return Empty
	}
	if g.Roller.Roll(c) < g.SpawnChance {
		return 1
	}
	return Empty
}
