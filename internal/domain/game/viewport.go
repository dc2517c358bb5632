package game

import (
	"sort"

	"geoforge/internal/domain/grid"
)

// ActiveSet is the transient set of cells currently rendered. It owns no
// game state and is rebuilt on every viewport change.
type ActiveSet map[grid.Cell]struct{}

// CellView pairs an activated cell with its current value so the renderer
// can draw it without touching the store.
type CellView struct {
	Cell  grid.Cell  `json:"cell"`
	Value TokenValue `json:"value"`
}

// ViewportDiff lists the cells to activate and deactivate after a window
// change. Both lists are sorted row-major for deterministic output.
type ViewportDiff struct {
	Activate   []CellView  `json:"activate"`
	Deactivate []grid.Cell `json:"deactivate"`
}

// DiffViewport computes the next active set for rect and its diff against
// prev. Values for newly activated cells are read from the override store;
// deactivation carries no value because leaving the viewport must not
// change or re-read any cell state.
func DiffViewport(prev ActiveSet, rect grid.Rect, store *OverrideStore) (ActiveSet, ViewportDiff) {
	next := make(ActiveSet, (rect.MaxRow-rect.MinRow+1)*(rect.MaxCol-rect.MinCol+1))
	diff := ViewportDiff{Activate: []CellView{}, Deactivate: []grid.Cell{}}

	for row := rect.MinRow; row <= rect.MaxRow; row++ {
		for col := rect.MinCol; col <= rect.MaxCol; col++ {
			c := grid.Cell{Row: row, Col: col}
			next[c] = struct{}{}
			if _, ok := prev[c]; !ok {
				diff.Activate = append(diff.Activate, CellView{Cell: c, Value: store.Get(c)})
			}
		}
	}
	for c := range prev {
		if !rect.Contains(c) {
			diff.Deactivate = append(diff.Deactivate, c)
		}
	}
	sort.Slice(diff.Deactivate, func(i, j int) bool {
		if diff.Deactivate[i].Row != diff.Deactivate[j].Row {
			return diff.Deactivate[i].Row < diff.Deactivate[j].Row
		}
		return diff.Deactivate[i].Col < diff.Deactivate[j].Col
	})
	return next, diff
}
