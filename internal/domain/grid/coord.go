package grid

import (
	"fmt"
	"math"
)

// Cell identifies one grid square by integer row/col. Rows grow north,
// cols grow east. Range is unbounded.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key returns a stable string form usable as a map key or log field.
func (c Cell) Key() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// GeoPoint is a raw geographic position in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Window is a visible geographic rectangle in the same units as CellSize.
type Window struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Rect is an inclusive rectangle of cell coordinates.
type Rect struct {
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
}

// Contains reports whether c falls inside the rectangle.
func (r Rect) Contains(c Cell) bool {
	return c.Row >= r.MinRow && c.Row <= r.MaxRow && c.Col >= r.MinCol && c.Col <= r.MaxCol
}

// Bounds is the geographic extent of a single cell.
type Bounds struct {
	South float64 `json:"south"`
	North float64 `json:"north"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Grid partitions geographic space into square cells of CellSize degrees.
// The partition defines ownership of real-world space by cell, so every
// conversion floors against the same size with no epsilon adjustment.
type Grid struct {
	CellSize float64
}

// CellAt maps a geographic position to the cell that owns it.
func (g Grid) CellAt(p GeoPoint) Cell {
	return Cell{
		Row: int(math.Floor(p.Lat / g.CellSize)),
		Col: int(math.Floor(p.Lng / g.CellSize)),
	}
}

// CellBounds returns the geographic rectangle covered by c. The southern
// and western edges belong to c, the northern and eastern edges to its
// neighbors.
func (g Grid) CellBounds(c Cell) Bounds {
	return Bounds{
		South: float64(c.Row) * g.CellSize,
		North: float64(c.Row+1) * g.CellSize,
		West:  float64(c.Col) * g.CellSize,
		East:  float64(c.Col+1) * g.CellSize,
	}
}

// CellCenter returns the midpoint of the cell's bounds.
func (g Grid) CellCenter(c Cell) GeoPoint {
	b := g.CellBounds(c)
	return GeoPoint{
		Lat: (b.South + b.North) / 2,
		Lng: (b.West + b.East) / 2,
	}
}

// RectForWindow returns the cell rectangle covering the window plus margin
// extra rings of cells on every side.
func (g Grid) RectForWindow(w Window, margin int) Rect {
	return Rect{
		MinRow: int(math.Floor(w.South/g.CellSize)) - margin,
		MaxRow: int(math.Ceil(w.North/g.CellSize)) + margin,
		MinCol: int(math.Floor(w.West/g.CellSize)) - margin,
		MaxCol: int(math.Ceil(w.East/g.CellSize)) + margin,
	}
}

// Chebyshev returns the chessboard distance between two cells.
func Chebyshev(a, b Cell) int {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// WithinRadius reports whether c is at most radius cells away from origin
// under Chebyshev distance.
func WithinRadius(c, origin Cell, radius int) bool {
	return Chebyshev(c, origin) <= radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
