package ports

import "geoforge/internal/domain/game"

// InteractionMetrics counts interaction outcomes and persistence health
// for the /ops/kpi surface.
type InteractionMetrics interface {
	RecordInteraction(signal game.Signal)
	RecordPersistenceSkip()
}
