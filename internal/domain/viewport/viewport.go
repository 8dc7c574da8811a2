package viewport

import (
	"errors"

	"rbcmap/internal/domain/grid"
)

var ErrInvalidZoom = errors.New("invalid zoom level")

// Config holds the zoom levels the minimap may display. A level is the
// number of city blocks shown per axis; levels step without any
// intermediate state.
type Config struct {
	Levels []int
}

func DefaultConfig() Config {
	return Config{Levels: []int{3, 5, 7, 9}}
}

func (c Config) Valid(zoom int) bool {
	for _, l := range c.Levels {
		if l == zoom {
			return true
		}
	}
	return false
}

// ZoomIn steps one level toward more detail (fewer blocks), saturating
// at the smallest configured level.
func (c Config) ZoomIn(current int) int {
	for i, l := range c.Levels {
		if l == current && i > 0 {
			return c.Levels[i-1]
		}
	}
	return current
}

// ZoomOut steps one level toward less detail, saturating at the largest
// configured level.
func (c Config) ZoomOut(current int) int {
	for i, l := range c.Levels {
		if l == current && i < len(c.Levels)-1 {
			return c.Levels[i+1]
		}
	}
	return current
}

// Window is the rectangle of axis coordinates the minimap shows,
// inclusive on all four edges.
type Window struct {
	ColMin int `json:"col_min"`
	ColMax int `json:"col_max"`
	RowMin int `json:"row_min"`
	RowMax int `json:"row_max"`
}

// Origin is the top-left cell of the window, the reference point for
// the cell transform.
func (w Window) Origin() grid.Location {
	return grid.Location{Col: w.ColMin, Row: w.RowMin}
}

func (w Window) Contains(loc grid.Location) bool {
	return loc.Col >= w.ColMin && loc.Col <= w.ColMax &&
		loc.Row >= w.RowMin && loc.Row <= w.RowMax
}

// VisibleWindow computes the window around a center at the given zoom:
// center ± (zoom-1) per axis, each edge clamped to the bounds
// independently. Near a city edge the window shrinks asymmetrically
// instead of shifting, so the player marker is not re-centered there.
func VisibleWindow(cfg grid.Config, center grid.Location, zoom int) Window {
	reach := zoom - 1
	return Window{
		ColMin: grid.Clamp(center.Col-reach, cfg.MinCoord, cfg.MaxCoord),
		ColMax: grid.Clamp(center.Col+reach, cfg.MinCoord, cfg.MaxCoord),
		RowMin: grid.Clamp(center.Row-reach, cfg.MinCoord, cfg.MaxCoord),
		RowMax: grid.Clamp(center.Row+reach, cfg.MinCoord, cfg.MaxCoord),
	}
}

// CellToLocation maps a clicked grid cell back to a map location. It is
// the exact inverse of LocationToCell for every cell in the window,
// alleys included; the result is not clamped, callers apply the edge
// policy themselves.
func CellToLocation(origin grid.Location, cellRow, cellCol int) grid.Location {
	return grid.Location{Col: origin.Col + cellCol, Row: origin.Row + cellRow}
}

// LocationToCell is the forward transform used to place POIs and the
// player marker inside a rendered window.
func LocationToCell(origin grid.Location, loc grid.Location) (cellRow, cellCol int) {
	return loc.Row - origin.Row, loc.Col - origin.Col
}
