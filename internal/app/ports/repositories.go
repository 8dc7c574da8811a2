package ports

import (
	"context"
	"time"

	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// MapDataRepository is the data-load collaborator: it hands over the
// raw street and POI rows a snapshot is built from. Retry/backoff and
// row-level sanity checks on the scrape side happen before these calls.
type MapDataRepository interface {
	Streets(ctx context.Context) ([]grid.StreetRecord, error)
	POIs(ctx context.Context) ([]poi.Record, error)
}

// DestinationRecord is a saved travel target for one character. The
// transit fields hold the alight station chosen when the destination
// was set, if a transit-assisted route was cheaper at that time.
type DestinationRecord struct {
	CharacterID string         `json:"character_id"`
	Loc         grid.Location  `json:"loc"`
	TransitLoc  *grid.Location `json:"transit_loc,omitempty"`
	SetAt       time.Time      `json:"set_at"`
}

type DestinationRepository interface {
	// SetCurrent stores the destination and appends it to the recent
	// list, pruning the list to keepRecent entries per character.
	SetCurrent(ctx context.Context, rec DestinationRecord, keepRecent int) error
	// Current returns the latest destination or ErrNotFound.
	Current(ctx context.Context, characterID string) (DestinationRecord, error)
	Recent(ctx context.Context, characterID string, limit int) ([]DestinationRecord, error)
	// Clear forgets the current destination only. The recent list is
	// history, not state: it keeps its entries across a clear.
	Clear(ctx context.Context, characterID string) error
}

// CharacterRecord is a registered account for this tool's own API.
type CharacterRecord struct {
	ID           string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}

type CharacterRepository interface {
	// Create fails with ErrConflict when the name is already taken.
	Create(ctx context.Context, rec CharacterRecord) error
	GetByName(ctx context.Context, name string) (CharacterRecord, error)
	GetByID(ctx context.Context, id string) (CharacterRecord, error)
}

// SettingRepository persists small per-character UI state, currently
// only the minimap zoom level.
type SettingRepository interface {
	SaveZoom(ctx context.Context, characterID string, zoom int) error
	Zoom(ctx context.Context, characterID string) (int, bool, error)
}
