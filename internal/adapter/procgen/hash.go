package procgen

import (
	"fmt"
	"hash/fnv"

	"geoforge/internal/domain/grid"
)

// HashRoller derives a uniform value in [0, 1) from the cell coordinates
// alone. Two rollers built with the same salt agree on every cell, which
// is what makes the base layer reproducible across restarts and clients.
type HashRoller struct {
	salt string
}

func NewHashRoller(salt string) *HashRoller {
	return &HashRoller{salt: salt}
}

func (r *HashRoller) Roll(c grid.Cell) float64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(r.salt))
	_, _ = hasher.Write([]byte{0})
	_, _ = fmt.Fprintf(hasher, "cell:%d:%d", c.Row, c.Col)

	// Top 53 bits fill a float64 mantissa exactly.
	return float64(hasher.Sum64()>>11) / float64(1<<53)
}
