package httpadapter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/query"
	"rbcmap/internal/app/session"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
	"rbcmap/internal/domain/route"
	"rbcmap/internal/domain/viewport"
)

func TestResponseJSONUsesSnakeCase(t *testing.T) {
	bank := poi.POI{
		Name:     "OmniBank Raven & 50th",
		Category: poi.CategoryBank,
		Loc:      grid.Location{Col: 69, Row: 99},
	}
	station := poi.POI{
		Name:     "Calliope Station",
		Category: poi.CategoryTransit,
		Loc:      grid.Location{Col: 41, Row: 49},
	}
	transitCost := 59

	cases := []struct {
		name    string
		payload any
		want    []string
		notWant []string
	}{
		{
			name: "nearby",
			payload: query.NearbyResponse{
				Found:        true,
				POI:          &bank,
				Distance:     12,
				Intersection: "Raven & 50th",
			},
			want:    []string{"found", "poi", "distance", "intersection"},
			notWant: []string{"Found", "POI", "Distance", "Intersection"},
		},
		{
			name: "route",
			payload: query.RouteResponse{
				From:       grid.Location{Col: 0, Row: 0},
				To:         grid.Location{Col: 99, Row: 99},
				DirectCost: 99,
				Transit: &query.TransitOption{
					Cost:     transitCost,
					Board:    station.Name,
					BoardLoc: station.Loc,
				},
				Cheapest: route.ModeTransit,
			},
			want:    []string{"from", "to", "direct_cost", "transit", "board_loc", "cheapest"},
			notWant: []string{"DirectCost", "Transit", "BoardLoc", "Cheapest"},
		},
		{
			name: "viewport",
			payload: query.ViewportResponse{
				Window:     viewport.Window{ColMin: 65, ColMax: 73, RowMin: 95, RowMax: 103},
				Center:     grid.Location{Col: 69, Row: 99},
				Zoom:       5,
				Columns:    []query.StreetLabel{{Coordinate: 68, Name: "Raven"}},
				POIs:       []query.PlacedPOI{{POI: bank, CellRow: 4, CellCol: 4}},
				PlayerCell: query.Cell{Row: 4, Col: 4},
			},
			want:    []string{"window", "columns", "pois", "player_cell", "cell_row", "cell_col"},
			notWant: []string{"Window", "Columns", "POIs", "PlayerCell", "CellRow"},
		},
		{
			name: "destination",
			payload: session.GetDestinationResponse{
				Set:          true,
				Loc:          grid.Location{Col: 99, Row: 99},
				TransitLoc:   &station.Loc,
				Intersection: "Raven & 50th",
				DirectCost:   99,
				TransitCost:  &transitCost,
				Cheapest:     route.ModeTransit,
			},
			want:    []string{"set", "loc", "transit_loc", "direct_cost", "transit_cost"},
			notWant: []string{"Set", "Loc", "TransitLoc", "DirectCost", "TransitCost"},
		},
		{
			name: "reload",
			payload: mapdata.ReloadResponse{
				Streets:        42,
				StreetsSkipped: 1,
				POIs:           poi.LoadReport{Loaded: 100, Skipped: 3},
				LoadedAt:       time.Unix(1700000000, 0).UTC(),
			},
			want:    []string{"streets", "streets_skipped", "pois", "loaded", "skipped", "loaded_at"},
			notWant: []string{"Streets", "StreetsSkipped", "LoadedAt"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.payload)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			s := string(b)
			for _, key := range tc.want {
				if !strings.Contains(s, `"`+key+`"`) {
					t.Fatalf("missing key %q in %s", key, s)
				}
			}
			for _, key := range tc.notWant {
				if strings.Contains(s, `"`+key+`"`) {
					t.Fatalf("unexpected key %q in %s", key, s)
				}
			}
		})
	}
}
