package query

import (
	"context"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
	"rbcmap/internal/domain/viewport"
)

// ViewportUseCase resolves everything the renderer needs for one frame
// of the minimap: the visible window, street labels on both axes, the
// POIs inside the window with their cell positions, and the player cell.
type ViewportUseCase struct {
	Holder  *mapdata.Holder
	Zoom    viewport.Config
	Metrics ports.QueryMetrics
}

type ViewportRequest struct {
	Center grid.Location
	Zoom   int
}

// StreetLabel names one street line crossing the window.
type StreetLabel struct {
	Coordinate int    `json:"coordinate"`
	Name       string `json:"name"`
}

// PlacedPOI is a POI projected into window cells.
type PlacedPOI struct {
	POI     poi.POI `json:"poi"`
	CellRow int     `json:"cell_row"`
	CellCol int     `json:"cell_col"`
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ViewportResponse struct {
	Window     viewport.Window `json:"window"`
	Center     grid.Location   `json:"center"`
	Zoom       int             `json:"zoom"`
	Columns    []StreetLabel   `json:"columns"`
	Rows       []StreetLabel   `json:"rows"`
	POIs       []PlacedPOI     `json:"pois"`
	PlayerCell Cell            `json:"player_cell"`
}

func (u ViewportUseCase) Execute(_ context.Context, req ViewportRequest) (ViewportResponse, error) {
	if u.Holder == nil || !u.Zoom.Valid(req.Zoom) {
		return ViewportResponse{}, ErrInvalidRequest
	}
	snap := u.Holder.Current()
	cfg := snap.Registry.Config()
	center := cfg.ClampLocation(req.Center)

	win := viewport.VisibleWindow(cfg, center, req.Zoom)
	origin := win.Origin()

	resp := ViewportResponse{
		Window:  win,
		Center:  center,
		Zoom:    req.Zoom,
		Columns: streetLabels(snap.Registry, grid.AxisColumn, win.ColMin, win.ColMax),
		Rows:    streetLabels(snap.Registry, grid.AxisRow, win.RowMin, win.RowMax),
	}

	for _, cat := range poi.Categories {
		for _, p := range snap.POIs.AllOfCategory(cat) {
			if !win.Contains(p.Loc) {
				continue
			}
			row, col := viewport.LocationToCell(origin, p.Loc)
			resp.POIs = append(resp.POIs, PlacedPOI{POI: p, CellRow: row, CellCol: col})
		}
	}

	playerRow, playerCol := viewport.LocationToCell(origin, center)
	resp.PlayerCell = Cell{Row: playerRow, Col: playerCol}

	if u.Metrics != nil {
		u.Metrics.RecordQuery("viewport")
	}
	return resp, nil
}

type ClickRequest struct {
	Origin  grid.Location
	CellRow int
	CellCol int
}

type ClickResponse struct {
	Loc          grid.Location `json:"loc"`
	Intersection string        `json:"intersection"`
}

// Click translates a clicked minimap cell back into a map location, the
// exact inverse of the placement transform, clamped to the city bounds.
func (u ViewportUseCase) Click(_ context.Context, req ClickRequest) (ClickResponse, error) {
	if u.Holder == nil || req.CellRow < 0 || req.CellCol < 0 {
		return ClickResponse{}, ErrInvalidRequest
	}
	snap := u.Holder.Current()
	loc := viewport.CellToLocation(req.Origin, req.CellRow, req.CellCol)
	loc = snap.Registry.Config().ClampLocation(loc)
	if u.Metrics != nil {
		u.Metrics.RecordQuery("click")
	}
	return ClickResponse{
		Loc:          loc,
		Intersection: snap.Registry.IntersectionName(loc),
	}, nil
}

func streetLabels(reg *grid.Registry, axis grid.Axis, min, max int) []StreetLabel {
	labels := []StreetLabel{}
	for coord := min; coord <= max; coord++ {
		name, ok, err := reg.NameOf(axis, coord)
		if err != nil || !ok {
			continue
		}
		labels = append(labels, StreetLabel{Coordinate: coord, Name: name})
	}
	return labels
}
