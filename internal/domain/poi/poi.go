package poi

import (
	"time"

	"rbcmap/internal/domain/grid"
)

// Category is the closed set of point-of-interest kinds on the map.
type Category string

const (
	CategoryBank            Category = "bank"
	CategoryTavern          Category = "tavern"
	CategoryTransit         Category = "transit"
	CategoryGuild           Category = "guild"
	CategoryShop            Category = "shop"
	CategoryUserBuilding    Category = "user_building"
	CategoryPlaceOfInterest Category = "place_of_interest"
)

// Categories lists every valid category in a fixed order. Query and
// rendering code iterates this table instead of branching per type.
var Categories = []Category{
	CategoryBank,
	CategoryTavern,
	CategoryTransit,
	CategoryGuild,
	CategoryShop,
	CategoryUserBuilding,
	CategoryPlaceOfInterest,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// POI is a placed point of interest. NextUpdate is freshness metadata
// carried only by guilds and shops, which relocate on a schedule; the
// geometry code never reads it.
type POI struct {
	Name       string        `json:"name"`
	Category   Category      `json:"category"`
	Loc        grid.Location `json:"loc"`
	NextUpdate *time.Time    `json:"next_update,omitempty"`
}

// NoLocation is the placeholder the upstream data source uses for POIs
// without a fixed position (moving guilds between updates). Records
// carrying it are skipped at load, never turned into a real Location.
const NoLocation = "NA"

// Record is the raw, street-name-addressed form a POI arrives in from
// the data-load collaborator.
type Record struct {
	Name       string
	Category   Category
	Column     string
	Row        string
	NextUpdate *time.Time
}
