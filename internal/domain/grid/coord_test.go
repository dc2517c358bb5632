package grid

import (
	"math"
	"testing"
)

func TestGrid_CellAt_FloorsNegativeCoordinates(t *testing.T) {
	g := Grid{CellSize: 0.0005}

	got := g.CellAt(GeoPoint{Lat: -0.0001, Lng: 0.0001})
	if got.Row != -1 || got.Col != 0 {
		t.Fatalf("expected cell (-1,0), got (%d,%d)", got.Row, got.Col)
	}

	got = g.CellAt(GeoPoint{Lat: -0.0005, Lng: -0.0006})
	if got.Row != -1 || got.Col != -2 {
		t.Fatalf("expected cell (-1,-2), got (%d,%d)", got.Row, got.Col)
	}
}

func TestGrid_CellBounds_PartitionIsExact(t *testing.T) {
	g := Grid{CellSize: 0.0005}
	c := Cell{Row: 7, Col: -3}
	b := g.CellBounds(c)

	if b.North-b.South != g.CellSize {
		t.Fatalf("cell height %v != cell size %v", b.North-b.South, g.CellSize)
	}
	// The southern/western edges belong to the cell itself.
	if got := g.CellAt(GeoPoint{Lat: b.South, Lng: b.West}); got != c {
		t.Fatalf("south-west corner maps to %v, want %v", got, c)
	}
	// The northern/eastern edges belong to the neighbors.
	if got := g.CellAt(GeoPoint{Lat: b.North, Lng: b.East}); got == c {
		t.Fatalf("north-east corner should not map back to %v", c)
	}
}

func TestGrid_CellCenter_IsMidpointOfBounds(t *testing.T) {
	g := Grid{CellSize: 0.0005}
	c := Cell{Row: -4, Col: 11}
	b := g.CellBounds(c)
	p := g.CellCenter(c)

	if math.Abs(p.Lat-(b.South+b.North)/2) > 1e-12 {
		t.Fatalf("center lat %v not midpoint of (%v,%v)", p.Lat, b.South, b.North)
	}
	if math.Abs(p.Lng-(b.West+b.East)/2) > 1e-12 {
		t.Fatalf("center lng %v not midpoint of (%v,%v)", p.Lng, b.West, b.East)
	}
	if got := g.CellAt(p); got != c {
		t.Fatalf("center maps to %v, want %v", got, c)
	}
}

func TestGrid_RectForWindow_AddsMargin(t *testing.T) {
	g := Grid{CellSize: 0.001}
	w := Window{South: 0.0015, North: 0.0035, West: -0.0015, East: 0.0005}

	r := g.RectForWindow(w, 1)
	if r.MinRow != 0 || r.MaxRow != 5 {
		t.Fatalf("unexpected row range [%d,%d]", r.MinRow, r.MaxRow)
	}
	if r.MinCol != -3 || r.MaxCol != 2 {
		t.Fatalf("unexpected col range [%d,%d]", r.MinCol, r.MaxCol)
	}
	if !r.Contains(Cell{Row: 0, Col: -3}) || r.Contains(Cell{Row: 6, Col: 0}) {
		t.Fatalf("rect membership wrong: %+v", r)
	}
}

func TestChebyshev(t *testing.T) {
	cases := []struct {
		a, b Cell
		want int
	}{
		{Cell{0, 0}, Cell{0, 0}, 0},
		{Cell{0, 0}, Cell{1, 1}, 1},
		{Cell{2, -1}, Cell{-1, 0}, 3},
		{Cell{5, 5}, Cell{5, -2}, 7},
	}
	for _, tc := range cases {
		if got := Chebyshev(tc.a, tc.b); got != tc.want {
			t.Fatalf("Chebyshev(%v,%v)=%d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestWithinRadius_BoundaryIsInclusive(t *testing.T) {
	origin := Cell{Row: 10, Col: 10}
	if !WithinRadius(Cell{Row: 12, Col: 8}, origin, 2) {
		t.Fatalf("distance 2 should be within radius 2")
	}
	if WithinRadius(Cell{Row: 13, Col: 10}, origin, 2) {
		t.Fatalf("distance 3 should be outside radius 2")
	}
}
