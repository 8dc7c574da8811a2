package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
	"rbcmap/internal/domain/route"
)

var ErrInvalidRequest = errors.New("invalid session request")

// keepRecent bounds the per-character recent-destination history, as
// the reference tool keeps the ten most recent picks.
const keepRecent = 10

// UseCase persists a character's chosen destination and minimap zoom.
// The core computes destinations but never owns them; this collaborator
// stores them across restarts.
type UseCase struct {
	Destinations ports.DestinationRepository
	Settings     ports.SettingRepository
	Holder       *mapdata.Holder
	Calc         route.Calculator
	Now          func() time.Time
}

type SetDestinationRequest struct {
	CharacterID string
	Loc         grid.Location
}

type SetDestinationResponse struct {
	Loc        grid.Location  `json:"loc"`
	TransitLoc *grid.Location `json:"transit_loc,omitempty"`
}

// SetDestination saves the target, remembering the alight transit
// station when riding would be part of the cheapest route from anywhere
// (the station nearest the destination).
func (u UseCase) SetDestination(ctx context.Context, req SetDestinationRequest) (SetDestinationResponse, error) {
	if u.Destinations == nil || u.Holder == nil || strings.TrimSpace(req.CharacterID) == "" {
		return SetDestinationResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	snap := u.Holder.Current()
	loc := snap.Registry.Config().ClampLocation(req.Loc)

	rec := ports.DestinationRecord{
		CharacterID: req.CharacterID,
		Loc:         loc,
		SetAt:       nowFn(),
	}
	if alight, _, ok := route.Nearest(snap.POIs, loc, poi.CategoryTransit, 1); ok {
		stationLoc := alight.Loc
		rec.TransitLoc = &stationLoc
	}
	if err := u.Destinations.SetCurrent(ctx, rec, keepRecent); err != nil {
		return SetDestinationResponse{}, err
	}
	return SetDestinationResponse{Loc: rec.Loc, TransitLoc: rec.TransitLoc}, nil
}

type GetDestinationRequest struct {
	CharacterID string
	From        grid.Location
}

type GetDestinationResponse struct {
	Set          bool           `json:"set"`
	Loc          grid.Location  `json:"loc,omitempty"`
	TransitLoc   *grid.Location `json:"transit_loc,omitempty"`
	Intersection string         `json:"intersection,omitempty"`
	DirectCost   int            `json:"direct_cost,omitempty"`
	TransitCost  *int           `json:"transit_cost,omitempty"`
	Cheapest     route.Mode     `json:"cheapest,omitempty"`
}

// GetDestination reads the saved destination back and prices the trip
// from the supplied position against the current snapshot. No saved
// destination is an expected state, reported as Set=false.
func (u UseCase) GetDestination(ctx context.Context, req GetDestinationRequest) (GetDestinationResponse, error) {
	if u.Destinations == nil || u.Holder == nil || strings.TrimSpace(req.CharacterID) == "" {
		return GetDestinationResponse{}, ErrInvalidRequest
	}
	rec, err := u.Destinations.Current(ctx, req.CharacterID)
	if errors.Is(err, ports.ErrNotFound) {
		return GetDestinationResponse{Set: false}, nil
	}
	if err != nil {
		return GetDestinationResponse{}, err
	}

	snap := u.Holder.Current()
	from := snap.Registry.Config().ClampLocation(req.From)
	r := u.Calc.RouteCost(snap.POIs, from, rec.Loc)

	resp := GetDestinationResponse{
		Set:          true,
		Loc:          rec.Loc,
		TransitLoc:   rec.TransitLoc,
		Intersection: snap.Registry.IntersectionName(rec.Loc),
		DirectCost:   r.DirectCost,
		Cheapest:     r.Cheapest,
	}
	if r.Transit != nil {
		cost := r.Transit.Cost
		resp.TransitCost = &cost
	}
	return resp, nil
}

type RecentResponse struct {
	Destinations []ports.DestinationRecord `json:"destinations"`
}

func (u UseCase) RecentDestinations(ctx context.Context, characterID string) (RecentResponse, error) {
	if u.Destinations == nil || strings.TrimSpace(characterID) == "" {
		return RecentResponse{}, ErrInvalidRequest
	}
	recs, err := u.Destinations.Recent(ctx, characterID, keepRecent)
	if err != nil {
		return RecentResponse{}, err
	}
	return RecentResponse{Destinations: recs}, nil
}

func (u UseCase) ClearDestination(ctx context.Context, characterID string) error {
	if u.Destinations == nil || strings.TrimSpace(characterID) == "" {
		return ErrInvalidRequest
	}
	return u.Destinations.Clear(ctx, characterID)
}

type SaveZoomRequest struct {
	CharacterID string
	Zoom        int
}

func (u UseCase) SaveZoom(ctx context.Context, req SaveZoomRequest) error {
	if u.Settings == nil || strings.TrimSpace(req.CharacterID) == "" {
		return ErrInvalidRequest
	}
	return u.Settings.SaveZoom(ctx, req.CharacterID, req.Zoom)
}

// Zoom returns the saved zoom level or the given fallback.
func (u UseCase) Zoom(ctx context.Context, characterID string, fallback int) (int, error) {
	if u.Settings == nil || strings.TrimSpace(characterID) == "" {
		return 0, ErrInvalidRequest
	}
	zoom, ok, err := u.Settings.Zoom(ctx, characterID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return zoom, nil
}
