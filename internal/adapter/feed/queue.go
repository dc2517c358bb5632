// Package feed supplies position fixes to the tracked movement source.
package feed

import (
	"sync"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/grid"
)

const defaultBuffer = 16

// Queue is a push-driven position feed: an ingest surface (HTTP, a
// device bridge, a test) pushes fixes and the subscriber drains them.
// Fixes that arrive while the buffer is full are dropped; a newer fix
// always supersedes an older one.
type Queue struct {
	mu sync.Mutex
	ch chan grid.GeoPoint
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Subscribe() (<-chan grid.GeoPoint, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch != nil {
		return nil, ports.ErrLocationUnavailable
	}
	q.ch = make(chan grid.GeoPoint, defaultBuffer)
	return q.ch, nil
}

func (q *Queue) Unsubscribe() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch == nil {
		return
	}
	close(q.ch)
	q.ch = nil
}

// Push delivers a fix to the subscriber. Fixes pushed without a
// subscriber, or while the buffer is full, are dropped.
func (q *Queue) Push(p grid.GeoPoint) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch == nil {
		return
	}
	select {
	case q.ch <- p:
	default:
	}
}
