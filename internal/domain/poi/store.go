package poi

import "rbcmap/internal/domain/grid"

// LoadReport counts the outcome of building a store. Skipped records
// are an expected condition (placeholder coordinates, stale street
// names), not a failure.
type LoadReport struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Store is the immutable per-snapshot POI index. Slices keep insertion
// order from the load, which is the tie-break order for equal-distance
// queries.
type Store struct {
	byCategory map[Category][]POI
}

// BuildStore resolves records against the registry and indexes them by
// category. POIs sit offset steps inside their block (the game places
// buildings mid-block, one past the named intersection). Records with
// an invalid category, a placeholder location, or street names missing
// from the registry are skipped and counted.
func BuildStore(reg *grid.Registry, records []Record, offset int) (*Store, LoadReport) {
	s := &Store{byCategory: make(map[Category][]POI, len(Categories))}
	report := LoadReport{}
	for _, rec := range records {
		if !rec.Category.Valid() || rec.Column == NoLocation || rec.Row == NoLocation {
			report.Skipped++
			continue
		}
		col, err := reg.CoordinateOf(grid.AxisColumn, rec.Column)
		if err != nil {
			report.Skipped++
			continue
		}
		row, err := reg.CoordinateOf(grid.AxisRow, rec.Row)
		if err != nil {
			report.Skipped++
			continue
		}
		s.byCategory[rec.Category] = append(s.byCategory[rec.Category], POI{
			Name:       rec.Name,
			Category:   rec.Category,
			Loc:        grid.Location{Col: col + offset, Row: row + offset},
			NextUpdate: rec.NextUpdate,
		})
		report.Loaded++
	}
	return s, report
}

// EmptyStore returns a store with no POIs, used before the first load.
func EmptyStore() *Store {
	return &Store{byCategory: map[Category][]POI{}}
}

// AllOfCategory returns the POIs of one category in load order. The
// returned slice is shared with the store and must not be mutated.
func (s *Store) AllOfCategory(cat Category) []POI {
	return s.byCategory[cat]
}

// Len reports the total number of POIs across all categories.
func (s *Store) Len() int {
	n := 0
	for _, pois := range s.byCategory {
		n += len(pois)
	}
	return n
}
