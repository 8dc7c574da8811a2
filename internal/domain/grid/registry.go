package grid

import "errors"

var (
	ErrUnknownStreet     = errors.New("unknown street name")
	ErrUnknownCoordinate = errors.New("unknown coordinate")
)

// StreetRecord is one row of reference map data as delivered by the
// data-load collaborator. Names map to even coordinates spaced by 2;
// the city limits sit on the bounds at both ends of each axis.
type StreetRecord struct {
	Axis       Axis
	Name       string
	Coordinate int
}

// Registry is the bidirectional street name <-> coordinate mapping for
// both axes. It is built once per snapshot and never mutated.
type Registry struct {
	cfg     Config
	byName  map[Axis]map[string]int
	byCoord map[Axis]map[int]string
}

// BuildRegistry indexes the given street records. Records outside the
// configured bounds, with empty names, or duplicating a name already
// registered on the same axis are skipped; the count of skipped rows is
// returned so the loader can report it.
func BuildRegistry(cfg Config, records []StreetRecord) (*Registry, int) {
	r := &Registry{
		cfg: cfg,
		byName: map[Axis]map[string]int{
			AxisColumn: {},
			AxisRow:    {},
		},
		byCoord: map[Axis]map[int]string{
			AxisColumn: {},
			AxisRow:    {},
		},
	}
	skipped := 0
	for _, rec := range records {
		if rec.Axis != AxisColumn && rec.Axis != AxisRow {
			skipped++
			continue
		}
		if rec.Name == "" || rec.Coordinate < cfg.MinCoord || rec.Coordinate > cfg.MaxCoord {
			skipped++
			continue
		}
		if _, dup := r.byName[rec.Axis][rec.Name]; dup {
			skipped++
			continue
		}
		r.byName[rec.Axis][rec.Name] = rec.Coordinate
		// Boundary markers share coordinate 0 and the max under two
		// spellings ("WCL" / "Western City Limits"); first one wins the
		// reverse lookup.
		if _, taken := r.byCoord[rec.Axis][rec.Coordinate]; !taken {
			r.byCoord[rec.Axis][rec.Coordinate] = rec.Name
		}
	}
	return r, skipped
}

// CoordinateOf resolves a street name on an axis to its coordinate.
func (r *Registry) CoordinateOf(axis Axis, name string) (int, error) {
	coord, ok := r.byName[axis][name]
	if !ok {
		return 0, ErrUnknownStreet
	}
	return coord, nil
}

// NameOf resolves a coordinate back to a street name. An alley (odd
// coordinate inside the bounds) is a valid nameless position: it
// returns ok=false with a nil error. Coordinates outside the bounds, or
// even coordinates with no street registered, return ErrUnknownCoordinate.
func (r *Registry) NameOf(axis Axis, coord int) (string, bool, error) {
	if coord < r.cfg.MinCoord || coord > r.cfg.MaxCoord {
		return "", false, ErrUnknownCoordinate
	}
	if name, ok := r.byCoord[axis][coord]; ok {
		return name, true, nil
	}
	if coord%2 != 0 {
		return "", false, nil
	}
	return "", false, ErrUnknownCoordinate
}

// Bounds reports the boundary-marker coordinates for an axis. Both axes
// share the configured range; the signature keeps the axis explicit for
// callers that clamp per axis.
func (r *Registry) Bounds(_ Axis) (int, int) {
	return r.cfg.MinCoord, r.cfg.MaxCoord
}

func (r *Registry) Config() Config {
	return r.cfg
}

const edgeOfMap = "Edge of Map"

// IntersectionName renders the display name of the intersection a
// location belongs to. POIs sit one step inside their block, so the
// named streets are one coordinate back on each axis. Locations whose
// streets cannot be resolved render as "Edge of Map", matching the
// in-game map legend.
func (r *Registry) IntersectionName(loc Location) string {
	col, okCol, errCol := r.NameOf(AxisColumn, loc.Col-1)
	row, okRow, errRow := r.NameOf(AxisRow, loc.Row-1)
	if errCol != nil || errRow != nil || !okCol || !okRow {
		return edgeOfMap
	}
	return col + " & " + row
}
