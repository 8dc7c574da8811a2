package grid

// Axis identifies one of the two street directions in the city grid.
type Axis string

const (
	AxisColumn Axis = "column"
	AxisRow    Axis = "row"
)

// Location is a coordinate pair inside the city grid. Odd coordinates
// fall between named streets (alleys) and are valid positions.
type Location struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type Config struct {
	MinCoord int
	MaxCoord int
}

func DefaultConfig() Config {
	return Config{MinCoord: 0, MaxCoord: 200}
}

// Distance is the Chebyshev distance between two locations. Diagonal
// steps cost the same as orthogonal ones, so one unit equals one AP.
func Distance(a, b Location) int {
	dc := abs(a.Col - b.Col)
	dr := abs(a.Row - b.Row)
	if dc > dr {
		return dc
	}
	return dr
}

// Clamp pins a coordinate into [min, max]. The registry itself never
// clamps; consumers apply this at their own edges.
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampLocation pins both coordinates of a location into the grid bounds.
func (c Config) ClampLocation(loc Location) Location {
	return Location{
		Col: Clamp(loc.Col, c.MinCoord, c.MaxCoord),
		Row: Clamp(loc.Row, c.MinCoord, c.MaxCoord),
	}
}

func (c Config) Contains(loc Location) bool {
	return loc.Col >= c.MinCoord && loc.Col <= c.MaxCoord &&
		loc.Row >= c.MinCoord && loc.Row <= c.MaxCoord
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
