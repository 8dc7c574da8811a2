package mapdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

type fakeMapData struct {
	streets []grid.StreetRecord
	pois    []poi.Record
	err     error
}

func (f fakeMapData) Streets(_ context.Context) ([]grid.StreetRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.streets, nil
}

func (f fakeMapData) POIs(_ context.Context) ([]poi.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pois, nil
}

var _ ports.MapDataRepository = fakeMapData{}

func TestReloadBuildsAndSwapsSnapshot(t *testing.T) {
	cfg := grid.Config{MinCoord: 0, MaxCoord: 200}
	holder := NewHolder(cfg)
	before := holder.Current()

	uc := ReloadUseCase{
		Repo: fakeMapData{
			streets: []grid.StreetRecord{
				{Axis: grid.AxisColumn, Name: "Raven", Coordinate: 68},
				{Axis: grid.AxisRow, Name: "1st", Coordinate: 0},
			},
			pois: []poi.Record{
				{Name: "OmniBank", Category: poi.CategoryBank, Column: "Raven", Row: "1st"},
				{Name: "Drifter", Category: poi.CategoryGuild, Column: poi.NoLocation, Row: poi.NoLocation},
			},
		},
		Holder:      holder,
		Grid:        cfg,
		AlleyOffset: 1,
		Now:         func() time.Time { return time.Unix(1700000000, 0) },
	}

	resp, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if resp.Streets != 2 || resp.StreetsSkipped != 0 {
		t.Fatalf("unexpected street counts: %+v", resp)
	}
	if resp.POIs.Loaded != 1 || resp.POIs.Skipped != 1 {
		t.Fatalf("unexpected poi report: %+v", resp.POIs)
	}

	after := holder.Current()
	if after == before {
		t.Fatalf("snapshot was not swapped")
	}
	if after.POIs.Len() != 1 {
		t.Fatalf("new snapshot holds %d POIs", after.POIs.Len())
	}
	// The pre-reload snapshot stays intact for queries still holding it.
	if before.POIs.Len() != 0 {
		t.Fatalf("old snapshot mutated during reload")
	}
}

func TestReloadPropagatesSourceErrors(t *testing.T) {
	wantErr := errors.New("scrape offline")
	uc := ReloadUseCase{
		Repo:   fakeMapData{err: wantErr},
		Holder: NewHolder(grid.DefaultConfig()),
		Grid:   grid.DefaultConfig(),
	}
	if _, err := uc.Execute(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestReloadRequiresWiring(t *testing.T) {
	if _, err := (ReloadUseCase{}).Execute(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestHolderStartsEmptyButServable(t *testing.T) {
	holder := NewHolder(grid.DefaultConfig())
	s := holder.Current()
	if s == nil || s.Registry == nil || s.POIs == nil {
		t.Fatalf("initial snapshot must be usable: %+v", s)
	}
	if s.POIs.Len() != 0 {
		t.Fatalf("initial snapshot should be empty")
	}
}
