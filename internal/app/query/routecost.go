package query

import (
	"context"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/route"
)

// RouteUseCase compares direct against transit-assisted travel between
// two locations. It runs on every movement tick, so it touches nothing
// but the current snapshot.
type RouteUseCase struct {
	Holder  *mapdata.Holder
	Calc    route.Calculator
	Metrics ports.QueryMetrics
}

type RouteRequest struct {
	From grid.Location
	To   grid.Location
}

// TransitOption is the wire-friendly projection of a transit leg.
type TransitOption struct {
	Cost               int           `json:"cost"`
	Board              string        `json:"board"`
	BoardLoc           grid.Location `json:"board_loc"`
	BoardIntersection  string        `json:"board_intersection"`
	Alight             string        `json:"alight"`
	AlightLoc          grid.Location `json:"alight_loc"`
	AlightIntersection string        `json:"alight_intersection"`
}

type RouteResponse struct {
	From       grid.Location  `json:"from"`
	To         grid.Location  `json:"to"`
	DirectCost int            `json:"direct_cost"`
	Transit    *TransitOption `json:"transit,omitempty"`
	Cheapest   route.Mode     `json:"cheapest"`
}

func (u RouteUseCase) Execute(_ context.Context, req RouteRequest) (RouteResponse, error) {
	if u.Holder == nil {
		return RouteResponse{}, ErrInvalidRequest
	}
	snap := u.Holder.Current()
	cfg := snap.Registry.Config()
	from := cfg.ClampLocation(req.From)
	to := cfg.ClampLocation(req.To)

	r := u.Calc.RouteCost(snap.POIs, from, to)
	if u.Metrics != nil {
		u.Metrics.RecordQuery("route")
	}

	resp := RouteResponse{
		From:       from,
		To:         to,
		DirectCost: r.DirectCost,
		Cheapest:   r.Cheapest,
	}
	if r.Transit != nil {
		resp.Transit = &TransitOption{
			Cost:               r.Transit.Cost,
			Board:              r.Transit.Board.Name,
			BoardLoc:           r.Transit.Board.Loc,
			BoardIntersection:  snap.Registry.IntersectionName(r.Transit.Board.Loc),
			Alight:             r.Transit.Alight.Name,
			AlightLoc:          r.Transit.Alight.Loc,
			AlightIntersection: snap.Registry.IntersectionName(r.Transit.Alight.Loc),
		}
	}
	return resp, nil
}
