package game

import (
	"testing"

	"geoforge/internal/domain/grid"
)

func TestDiffViewport_InitialWindowActivatesFullRect(t *testing.T) {
	store := NewOverrideStore(generatorWithTokensAt(grid.Cell{Row: 0, Col: 0}))
	rect := grid.Rect{MinRow: 0, MaxRow: 1, MinCol: 0, MaxCol: 1}

	active, diff := DiffViewport(nil, rect, store)
	if len(active) != 4 || len(diff.Activate) != 4 || len(diff.Deactivate) != 0 {
		t.Fatalf("unexpected diff: active=%d activate=%d deactivate=%d",
			len(active), len(diff.Activate), len(diff.Deactivate))
	}
	if diff.Activate[0].Cell != (grid.Cell{Row: 0, Col: 0}) || diff.Activate[0].Value != 1 {
		t.Fatalf("expected token cell first with value 1, got %+v", diff.Activate[0])
	}
}

func TestDiffViewport_UnchangedWindowIsIdempotent(t *testing.T) {
	store := NewOverrideStore(barrenGenerator())
	rect := grid.Rect{MinRow: -1, MaxRow: 1, MinCol: -1, MaxCol: 1}

	active, _ := DiffViewport(nil, rect, store)
	again, diff := DiffViewport(active, rect, store)

	if len(diff.Activate) != 0 || len(diff.Deactivate) != 0 {
		t.Fatalf("second pass must be empty, got activate=%d deactivate=%d",
			len(diff.Activate), len(diff.Deactivate))
	}
	if len(again) != len(active) {
		t.Fatalf("active set changed size: %d -> %d", len(active), len(again))
	}
}

func TestDiffViewport_ScrollActivatesAndDeactivatesEdges(t *testing.T) {
	store := NewOverrideStore(barrenGenerator())
	active, _ := DiffViewport(nil, grid.Rect{MinRow: 0, MaxRow: 2, MinCol: 0, MaxCol: 2}, store)

	// Scroll one column east.
	_, diff := DiffViewport(active, grid.Rect{MinRow: 0, MaxRow: 2, MinCol: 1, MaxCol: 3}, store)

	if len(diff.Activate) != 3 {
		t.Fatalf("expected 3 activated cells, got %d", len(diff.Activate))
	}
	for _, v := range diff.Activate {
		if v.Cell.Col != 3 {
			t.Fatalf("activated cell %v not on incoming edge", v.Cell)
		}
	}
	if len(diff.Deactivate) != 3 {
		t.Fatalf("expected 3 deactivated cells, got %d", len(diff.Deactivate))
	}
	for _, c := range diff.Deactivate {
		if c.Col != 0 {
			t.Fatalf("deactivated cell %v not on outgoing edge", c)
		}
	}
}

func TestDiffViewport_DeactivationPreservesOverrides(t *testing.T) {
	tokenCell := grid.Cell{Row: 0, Col: 0}
	store := NewOverrideStore(generatorWithTokensAt(tokenCell))
	store.Set(tokenCell, Empty) // player picked the token up

	rect := grid.Rect{MinRow: 0, MaxRow: 0, MinCol: 0, MaxCol: 0}
	active, _ := DiffViewport(nil, rect, store)

	// Scroll far away, then back: the farming exploit from the pre-override
	// builds. The cell must come back empty, not reset to its base value.
	away := grid.Rect{MinRow: 100, MaxRow: 100, MinCol: 100, MaxCol: 100}
	active, diff := DiffViewport(active, away, store)
	if len(diff.Deactivate) != 1 {
		t.Fatalf("expected token cell to deactivate, got %d", len(diff.Deactivate))
	}

	_, diff = DiffViewport(active, rect, store)
	if len(diff.Activate) != 1 || diff.Activate[0].Value != Empty {
		t.Fatalf("reactivated cell should be empty, got %+v", diff.Activate)
	}
	if store.Len() != 1 {
		t.Fatalf("viewport churn changed the override store: %d entries", store.Len())
	}
}
