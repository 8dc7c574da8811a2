package memory

import (
	"context"
	"sync"

	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// Store backs every repository port with process memory. It serves the
// test suites and the offline mode of the CLI, where no database is
// reachable but a seeded map is still useful.
type Store struct {
	mu           sync.RWMutex
	streets      []grid.StreetRecord
	pois         []poi.Record
	characters   map[string]ports.CharacterRecord
	destinations map[string]ports.DestinationRecord
	recent       map[string][]ports.DestinationRecord
	zoom         map[string]int
}

func NewStore() *Store {
	return &Store{
		characters:   map[string]ports.CharacterRecord{},
		destinations: map[string]ports.DestinationRecord{},
		recent:       map[string][]ports.DestinationRecord{},
		zoom:         map[string]int{},
	}
}

// SeedMapData replaces the in-memory street and POI rows.
func (s *Store) SeedMapData(streets []grid.StreetRecord, pois []poi.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streets = append([]grid.StreetRecord(nil), streets...)
	s.pois = append([]poi.Record(nil), pois...)
}

// MapDataRepo exposes the seeded map rows as a ports.MapDataRepository.
type MapDataRepo struct {
	store *Store
}

func NewMapDataRepo(store *Store) MapDataRepo {
	return MapDataRepo{store: store}
}

func (r MapDataRepo) Streets(_ context.Context) ([]grid.StreetRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]grid.StreetRecord(nil), r.store.streets...), nil
}

func (r MapDataRepo) POIs(_ context.Context) ([]poi.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]poi.Record(nil), r.store.pois...), nil
}

var _ ports.MapDataRepository = MapDataRepo{}
