package route

import (
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// Mode names which travel option a route recommends.
type Mode string

const (
	ModeDirect  Mode = "direct"
	ModeTransit Mode = "transit"
)

// TransitLeg describes the transit-assisted option: walk to Board, ride
// the network for the flat fare, walk from Alight to the destination.
type TransitLeg struct {
	Board  poi.POI `json:"board"`
	Alight poi.POI `json:"alight"`
	Cost   int     `json:"cost"`
}

// Route is the cost comparison between walking directly and riding
// transit. Transit is nil when no transit station is loaded.
type Route struct {
	DirectCost int         `json:"direct_cost"`
	Transit    *TransitLeg `json:"transit,omitempty"`
	Cheapest   Mode        `json:"cheapest"`
}

// Calculator computes AP movement costs. The ride fare is configured,
// not hardcoded; the transit network charges it once regardless of how
// far apart the two stations are.
type Calculator struct {
	TransitRideCost int
}

// RouteCost compares direct travel against the best transit-assisted
// route between two locations. Ties favor direct travel. The call is
// pure: it reads only the given snapshot store and allocates nothing
// the caller can observe mutating, so it is safe on every movement tick.
func (c Calculator) RouteCost(store *poi.Store, from, to grid.Location) Route {
	r := Route{
		DirectCost: grid.Distance(from, to),
		Cheapest:   ModeDirect,
	}

	board, boardWalk, ok := Nearest(store, from, poi.CategoryTransit, 1)
	if !ok {
		return r
	}
	alight, _, ok := Nearest(store, to, poi.CategoryTransit, 1)
	if !ok {
		return r
	}

	leg := TransitLeg{
		Board:  board,
		Alight: alight,
		Cost:   boardWalk + c.TransitRideCost + grid.Distance(alight.Loc, to),
	}
	r.Transit = &leg
	if leg.Cost < r.DirectCost {
		r.Cheapest = ModeTransit
	}
	return r
}
