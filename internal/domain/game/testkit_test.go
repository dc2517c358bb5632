package game

import "geoforge/internal/domain/grid"

// fixedRoller returns a constant roll for every cell except the ones
// listed in low, which roll 0.
type fixedRoller struct {
	base float64
	low  map[grid.Cell]bool
}

func (r fixedRoller) Roll(c grid.Cell) float64 {
	if r.low[c] {
		return 0
	}
	return r.base
}

// barrenGenerator never spawns a base token.
func barrenGenerator() Generator {
	return Generator{Roller: fixedRoller{base: 0.99}, SpawnChance: 0.2}
}

// generatorWithTokensAt spawns a base token of value 1 exactly at the
// given cells.
func generatorWithTokensAt(cells ...grid.Cell) Generator {
	low := make(map[grid.Cell]bool, len(cells))
	for _, c := range cells {
		low[c] = true
	}
	return Generator{Roller: fixedRoller{base: 0.99, low: low}, SpawnChance: 0.2}
}
