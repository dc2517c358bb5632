package movement

import (
	"sync"

	"geoforge/internal/domain/game"
)

// Controller owns the source lifecycle: exactly one source runs at a
// time, and the old one is stopped (releasing its subscription) before
// the next one starts.
type Controller struct {
	mu      sync.Mutex
	manual  *Manual
	tracked *Tracked
	active  Source
}

func NewController(manual *Manual, tracked *Tracked) *Controller {
	return &Controller{manual: manual, tracked: tracked}
}

// Switch activates the source for mode. A tracked switch that cannot
// start (location unavailable) falls back to manual and reports the
// error so the caller can surface the degradation.
func (c *Controller) Switch(mode game.MovementMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		c.active.Stop()
		c.active = nil
	}

	var next Source
	switch mode {
	case game.ModeTracked:
		next = c.tracked
	default:
		next = c.manual
	}

	if err := next.Start(); err != nil {
		c.active = c.manual
		_ = c.manual.Start()
		return err
	}
	c.active = next
	return nil
}

// ActiveName returns the name of the running source, or "" before the
// first switch.
func (c *Controller) ActiveName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return ""
	}
	return c.active.Name()
}

// Manual exposes the stepping source for the discrete-step input surface.
func (c *Controller) Manual() *Manual {
	return c.manual
}
