package procgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"geoforge/internal/domain/grid"
)

// NoiseRoller samples normalized simplex noise at the cell coordinates.
// Unlike HashRoller its values are spatially correlated, so tokens come
// in clusters rather than uniform speckle. Determinism still holds: the
// same seed and frequency reproduce the same field.
type NoiseRoller struct {
	noise     opensimplex.Noise
	frequency float64
}

func NewNoiseRoller(seed int64, frequency float64) *NoiseRoller {
	if frequency <= 0 {
		frequency = 0.1
	}
	return &NoiseRoller{
		noise:     opensimplex.NewNormalized(seed),
		frequency: frequency,
	}
}

func (r *NoiseRoller) Roll(c grid.Cell) float64 {
	return r.noise.Eval2(float64(c.Row)*r.frequency, float64(c.Col)*r.frequency)
}
