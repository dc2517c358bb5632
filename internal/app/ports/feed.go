package ports

import "geoforge/internal/domain/grid"

// PositionFeed is a continuous external position source (a device GPS
// relay, a simulator). Fixes arrive at an arbitrary, unbounded rate.
//
// Subscribe returns ErrLocationUnavailable when the feed cannot deliver
// positions (permission denied, unsupported); callers fall back to manual
// movement. The returned channel is closed when the feed shuts down.
type PositionFeed interface {
	Subscribe() (<-chan grid.GeoPoint, error)
	Unsubscribe()
}
