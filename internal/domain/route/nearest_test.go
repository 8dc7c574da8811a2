package route

import (
	"testing"

	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

func storeFrom(t *testing.T, streets []grid.StreetRecord, records []poi.Record) *poi.Store {
	t.Helper()
	reg, skipped := grid.BuildRegistry(grid.Config{MinCoord: 0, MaxCoord: 200}, streets)
	if skipped != 0 {
		t.Fatalf("street load skipped %d", skipped)
	}
	store, report := poi.BuildStore(reg, records, 1)
	if report.Skipped != 0 {
		t.Fatalf("poi load skipped %d", report.Skipped)
	}
	return store
}

func bankTestStore(t *testing.T) *poi.Store {
	return storeFrom(t,
		[]grid.StreetRecord{
			{Axis: grid.AxisColumn, Name: "Aardvark", Coordinate: 2},
			{Axis: grid.AxisColumn, Name: "Raven", Coordinate: 68},
			{Axis: grid.AxisColumn, Name: "Zinc", Coordinate: 140},
			{Axis: grid.AxisRow, Name: "1st", Coordinate: 0},
			{Axis: grid.AxisRow, Name: "10th", Coordinate: 18},
			{Axis: grid.AxisRow, Name: "50th", Coordinate: 98},
		},
		[]poi.Record{
			{Name: "Raven & 1st Bank", Category: poi.CategoryBank, Column: "Raven", Row: "1st"},
			{Name: "Aardvark & 10th Bank", Category: poi.CategoryBank, Column: "Aardvark", Row: "10th"},
			{Name: "Zinc & 50th Bank", Category: poi.CategoryBank, Column: "Zinc", Row: "50th"},
		})
}

func TestNearestAtZeroDistance(t *testing.T) {
	store := bankTestStore(t)
	// The bank on Raven & 1st sits at (69, 1); a player standing there
	// is zero AP away from it.
	got, dist, ok := Nearest(store, grid.Location{Col: 69, Row: 1}, poi.CategoryBank, 1)
	if !ok {
		t.Fatalf("expected a nearest bank")
	}
	if got.Name != "Raven & 1st Bank" || dist != 0 {
		t.Fatalf("got %q at distance %d", got.Name, dist)
	}
}

func TestNearestRanksAreOrderedByDistance(t *testing.T) {
	store := bankTestStore(t)
	from := grid.Location{Col: 30, Row: 30}
	var prev int
	for rank := 1; rank <= 3; rank++ {
		_, dist, ok := Nearest(store, from, poi.CategoryBank, rank)
		if !ok {
			t.Fatalf("rank %d missing", rank)
		}
		if dist < prev {
			t.Fatalf("rank %d distance %d closer than rank %d distance %d", rank, dist, rank-1, prev)
		}
		prev = dist
	}
}

func TestNearestTieBreakKeepsLoadOrder(t *testing.T) {
	store := storeFrom(t,
		[]grid.StreetRecord{
			{Axis: grid.AxisColumn, Name: "Elm", Coordinate: 20},
			{Axis: grid.AxisColumn, Name: "Fir", Coordinate: 24},
			{Axis: grid.AxisRow, Name: "11th", Coordinate: 22},
		},
		[]poi.Record{
			// Both taverns end up 2 AP from (23, 23).
			{Name: "Loaded First", Category: poi.CategoryTavern, Column: "Elm", Row: "11th"},
			{Name: "Loaded Second", Category: poi.CategoryTavern, Column: "Fir", Row: "11th"},
		})
	from := grid.Location{Col: 23, Row: 23}

	first, d1, _ := Nearest(store, from, poi.CategoryTavern, 1)
	second, d2, _ := Nearest(store, from, poi.CategoryTavern, 2)
	if d1 != d2 {
		t.Fatalf("tie fixture broken: %d vs %d", d1, d2)
	}
	if first.Name != "Loaded First" || second.Name != "Loaded Second" {
		t.Fatalf("tie-break reordered: rank1=%q rank2=%q", first.Name, second.Name)
	}
}

func TestNearestRankBeyondAvailable(t *testing.T) {
	store := bankTestStore(t)
	if _, _, ok := Nearest(store, grid.Location{}, poi.CategoryBank, 4); ok {
		t.Fatalf("rank past category size must report not found")
	}
	if _, _, ok := Nearest(store, grid.Location{}, poi.CategoryTransit, 1); ok {
		t.Fatalf("empty category must report not found")
	}
	if _, _, ok := Nearest(store, grid.Location{}, poi.CategoryBank, 0); ok {
		t.Fatalf("rank 0 is invalid")
	}
}
