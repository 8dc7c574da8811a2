package memory

import (
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// SeedDemoCity loads a reduced copy of the city into the store: enough
// streets and POIs to exercise every query offline, with the transit
// stations at their real intersections.
func SeedDemoCity(store *Store) {
	columns := []struct {
		name  string
		coord int
	}{
		{"WCL", 0}, {"Aardvark", 2}, {"Alder", 4}, {"Buzzard", 6},
		{"Cormorant", 10}, {"Duck", 14}, {"Eagle", 18}, {"Ferret", 22},
		{"Gibbon", 26}, {"Haddock", 30}, {"Iguana", 34}, {"Jackal", 38},
		{"Mongoose", 50}, {"Nightingale", 56}, {"Quail", 66}, {"Raven", 68},
		{"Tapir", 78}, {"Unicorn", 82}, {"Vulture", 86}, {"Zebra", 98},
		{"ECL", 200},
	}
	rows := []struct {
		name  string
		coord int
	}{
		{"NCL", 0}, {"1st", 2}, {"2nd", 4}, {"5th", 10}, {"10th", 20},
		{"13th", 26}, {"25th", 50}, {"33rd", 66}, {"42nd", 84},
		{"50th", 100}, {"61st", 122}, {"75th", 150}, {"88th", 176},
		{"99th", 198}, {"SCL", 200},
	}

	streets := make([]grid.StreetRecord, 0, len(columns)+len(rows))
	for _, c := range columns {
		streets = append(streets, grid.StreetRecord{Axis: grid.AxisColumn, Name: c.name, Coordinate: c.coord})
	}
	for _, r := range rows {
		streets = append(streets, grid.StreetRecord{Axis: grid.AxisRow, Name: r.name, Coordinate: r.coord})
	}

	pois := []poi.Record{
		{Name: "OmniBank", Category: poi.CategoryBank, Column: "Aardvark", Row: "1st"},
		{Name: "OmniBank", Category: poi.CategoryBank, Column: "Raven", Row: "25th"},
		{Name: "OmniBank", Category: poi.CategoryBank, Column: "Zebra", Row: "75th"},
		{Name: "Calliope", Category: poi.CategoryTransit, Column: "Mongoose", Row: "25th"},
		{Name: "Clio", Category: poi.CategoryTransit, Column: "Zebra", Row: "50th"},
		{Name: "Erato", Category: poi.CategoryTransit, Column: "Cormorant", Row: "75th"},
		{Name: "Bleaker's Tavern", Category: poi.CategoryTavern, Column: "Eagle", Row: "10th"},
		{Name: "The Broken Lamp", Category: poi.CategoryTavern, Column: "Quail", Row: "42nd"},
		{Name: "Allurists Guild 1", Category: poi.CategoryGuild, Column: "Gibbon", Row: "33rd"},
		{Name: "Discount Magic", Category: poi.CategoryShop, Column: "Tapir", Row: "61st"},
		{Name: "The Cloister", Category: poi.CategoryPlaceOfInterest, Column: "Unicorn", Row: "88th"},
		{Name: "Raven's Rest", Category: poi.CategoryUserBuilding, Column: "Raven", Row: "99th"},
		// A guild between relocations has no fixed position yet.
		{Name: "Thieves Guild 2", Category: poi.CategoryGuild, Column: poi.NoLocation, Row: poi.NoLocation},
	}

	store.SeedMapData(streets, pois)
}
