package query

import (
	"context"
	"errors"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
	"rbcmap/internal/domain/route"
)

var ErrInvalidRequest = errors.New("invalid map query")

// NearbyUseCase answers "what is the Nth-closest <category> from here".
// A rank past the number of loaded POIs is an expected miss, reported
// as Found=false, not an error: a city with two transit stations simply
// has no third-closest one.
type NearbyUseCase struct {
	Holder  *mapdata.Holder
	Metrics ports.QueryMetrics
}

type NearbyRequest struct {
	From     grid.Location
	Category poi.Category
	Rank     int
}

type NearbyResponse struct {
	Found        bool     `json:"found"`
	POI          *poi.POI `json:"poi,omitempty"`
	Distance     int      `json:"distance,omitempty"`
	Intersection string   `json:"intersection,omitempty"`
}

func (u NearbyUseCase) Execute(_ context.Context, req NearbyRequest) (NearbyResponse, error) {
	if u.Holder == nil || !req.Category.Valid() || req.Rank < 1 {
		return NearbyResponse{}, ErrInvalidRequest
	}
	snap := u.Holder.Current()
	from := snap.Registry.Config().ClampLocation(req.From)

	hit, dist, ok := route.Nearest(snap.POIs, from, req.Category, req.Rank)
	if !ok {
		if u.Metrics != nil {
			u.Metrics.RecordQueryMiss("nearby")
		}
		return NearbyResponse{Found: false}, nil
	}
	if u.Metrics != nil {
		u.Metrics.RecordQuery("nearby")
	}
	return NearbyResponse{
		Found:        true,
		POI:          &hit,
		Distance:     dist,
		Intersection: snap.Registry.IntersectionName(hit.Loc),
	}, nil
}
