package movement

import (
	"sync"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/grid"
)

// Tracked converts a continuous position feed into coordinate updates.
// Fixes arrive at an arbitrary rate; updates are coalesced by comparing
// against the last delivered cell, so a device reporting at 10 Hz while
// the player stands still produces no state churn.
//
// When the feed is unavailable the source stays inert instead of
// crashing: Start returns ports.ErrLocationUnavailable and the caller is
// expected to offer manual movement instead.
type Tracked struct {
	feed ports.PositionFeed
	grid grid.Grid
	emit MoveFunc

	mu   sync.Mutex
	done chan struct{}
	last *grid.Cell
}

func NewTracked(feed ports.PositionFeed, g grid.Grid, emit MoveFunc) *Tracked {
	return &Tracked{feed: feed, grid: g, emit: emit}
}

func (t *Tracked) Name() string { return "tracked" }

func (t *Tracked) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done != nil {
		return nil
	}
	if t.feed == nil {
		return ports.ErrLocationUnavailable
	}

	fixes, err := t.feed.Subscribe()
	if err != nil {
		return ports.ErrLocationUnavailable
	}

	done := make(chan struct{})
	t.done = done
	t.last = nil
	go t.consume(fixes, done)
	return nil
}

func (t *Tracked) Stop() {
	t.mu.Lock()
	done := t.done
	t.done = nil
	t.mu.Unlock()

	if done == nil {
		return
	}
	t.feed.Unsubscribe()
	<-done
}

func (t *Tracked) consume(fixes <-chan grid.GeoPoint, done chan struct{}) {
	defer close(done)
	for fix := range fixes {
		cell := t.grid.CellAt(fix)

		t.mu.Lock()
		if t.done != done {
			t.mu.Unlock()
			return
		}
		if t.last != nil && *t.last == cell {
			t.mu.Unlock()
			continue
		}
		last := cell
		t.last = &last
		t.mu.Unlock()

		t.emit(cell)
	}
}
