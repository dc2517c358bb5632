package movement

import (
	"errors"
	"testing"
	"time"

	"geoforge/internal/app/ports"
	"geoforge/internal/domain/game"
	"geoforge/internal/domain/grid"
)

type recordingSink struct {
	cells chan grid.Cell
}

func newRecordingSink() *recordingSink {
	return &recordingSink{cells: make(chan grid.Cell, 64)}
}

func (s *recordingSink) emit(c grid.Cell) {
	s.cells <- c
}

func (s *recordingSink) drain() []grid.Cell {
	var out []grid.Cell
	for {
		select {
		case c := <-s.cells:
			out = append(out, c)
		default:
			return out
		}
	}
}

type stubFeed struct {
	ch          chan grid.GeoPoint
	unavailable bool
}

func (f *stubFeed) Subscribe() (<-chan grid.GeoPoint, error) {
	if f.unavailable {
		return nil, ports.ErrLocationUnavailable
	}
	return f.ch, nil
}

func (f *stubFeed) Unsubscribe() {
	close(f.ch)
}

func TestManual_StepsFromCurrentPosition(t *testing.T) {
	pos := grid.Cell{Row: 2, Col: 2}
	sink := newRecordingSink()
	m := NewManual(func() grid.Cell { return pos }, sink.emit)
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, tc := range []struct {
		dir  string
		want grid.Cell
	}{
		{DirNorth, grid.Cell{Row: 3, Col: 2}},
		{DirSouth, grid.Cell{Row: 1, Col: 2}},
		{DirEast, grid.Cell{Row: 2, Col: 3}},
		{DirWest, grid.Cell{Row: 2, Col: 1}},
	} {
		if err := m.Step(tc.dir); err != nil {
			t.Fatalf("step %s: %v", tc.dir, err)
		}
		got := sink.drain()
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("step %s emitted %v, want %v", tc.dir, got, tc.want)
		}
	}

	if err := m.Step("up"); !errors.Is(err, ErrUnknownDirection) {
		t.Fatalf("expected ErrUnknownDirection, got %v", err)
	}
}

func TestManual_StoppedSourceDropsSteps(t *testing.T) {
	sink := newRecordingSink()
	m := NewManual(func() grid.Cell { return grid.Cell{} }, sink.emit)
	if err := m.Step(DirNorth); err != nil {
		t.Fatalf("step before start: %v", err)
	}
	if got := sink.drain(); len(got) != 0 {
		t.Fatalf("stopped source emitted %v", got)
	}
}

func TestTracked_CoalescesFixesInsideOneCell(t *testing.T) {
	sink := newRecordingSink()
	feed := &stubFeed{ch: make(chan grid.GeoPoint, 16)}
	tr := NewTracked(feed, grid.Grid{CellSize: 0.001}, sink.emit)
	if err := tr.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Three fixes inside cell (0,0), then one inside (0,1).
	feed.ch <- grid.GeoPoint{Lat: 0.0001, Lng: 0.0001}
	feed.ch <- grid.GeoPoint{Lat: 0.0005, Lng: 0.0002}
	feed.ch <- grid.GeoPoint{Lat: 0.0009, Lng: 0.0009}
	feed.ch <- grid.GeoPoint{Lat: 0.0001, Lng: 0.0011}

	want := []grid.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	for i, w := range want {
		select {
		case got := <-sink.cells:
			if got != w {
				t.Fatalf("update %d is %v, want %v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for update %d", i)
		}
	}
	tr.Stop()

	if extra := sink.drain(); len(extra) != 0 {
		t.Fatalf("repeated fixes produced extra updates: %v", extra)
	}
}

func TestTracked_UnavailableFeedIsInertNotFatal(t *testing.T) {
	sink := newRecordingSink()
	feed := &stubFeed{unavailable: true}
	tr := NewTracked(feed, grid.Grid{CellSize: 0.001}, sink.emit)

	if err := tr.Start(); !errors.Is(err, ports.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
	// Stop on a never-started source must not panic or block.
	done := make(chan struct{})
	go func() {
		tr.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop blocked on inert source")
	}
}

func TestController_SwitchStopsOldSourceFirst(t *testing.T) {
	sink := newRecordingSink()
	feed := &stubFeed{ch: make(chan grid.GeoPoint, 4)}
	manual := NewManual(func() grid.Cell { return grid.Cell{} }, sink.emit)
	tracked := NewTracked(feed, grid.Grid{CellSize: 0.001}, sink.emit)
	ctl := NewController(manual, tracked)

	if err := ctl.Switch(game.ModeManual); err != nil {
		t.Fatalf("switch manual: %v", err)
	}
	if ctl.ActiveName() != "manual" {
		t.Fatalf("active = %q, want manual", ctl.ActiveName())
	}

	if err := ctl.Switch(game.ModeTracked); err != nil {
		t.Fatalf("switch tracked: %v", err)
	}
	if ctl.ActiveName() != "tracked" {
		t.Fatalf("active = %q, want tracked", ctl.ActiveName())
	}
	// The manual source was stopped: its steps are dropped now.
	if err := manual.Step(DirNorth); err != nil {
		t.Fatalf("step: %v", err)
	}
	if got := sink.drain(); len(got) != 0 {
		t.Fatalf("stopped manual source still emitting: %v", got)
	}
}

func TestController_TrackedFailureFallsBackToManual(t *testing.T) {
	sink := newRecordingSink()
	feed := &stubFeed{unavailable: true}
	manual := NewManual(func() grid.Cell { return grid.Cell{} }, sink.emit)
	tracked := NewTracked(feed, grid.Grid{CellSize: 0.001}, sink.emit)
	ctl := NewController(manual, tracked)

	err := ctl.Switch(game.ModeTracked)
	if !errors.Is(err, ports.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
	if ctl.ActiveName() != "manual" {
		t.Fatalf("expected manual fallback, active = %q", ctl.ActiveName())
	}
	if err := manual.Step(DirEast); err != nil {
		t.Fatalf("fallback manual source not started: %v", err)
	}
	if got := sink.drain(); len(got) != 1 {
		t.Fatalf("fallback manual source not emitting: %v", got)
	}
}
