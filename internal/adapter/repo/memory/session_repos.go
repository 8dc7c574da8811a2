package memory

import (
	"context"

	"rbcmap/internal/app/ports"
)

type CharacterRepo struct {
	store *Store
}

func NewCharacterRepo(store *Store) CharacterRepo {
	return CharacterRepo{store: store}
}

func (r CharacterRepo) Create(_ context.Context, rec ports.CharacterRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.characters[rec.Name]; exists {
		return ports.ErrConflict
	}
	r.store.characters[rec.Name] = rec
	return nil
}

func (r CharacterRepo) GetByName(_ context.Context, name string) (ports.CharacterRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.characters[name]
	if !ok {
		return ports.CharacterRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r CharacterRepo) GetByID(_ context.Context, id string) (ports.CharacterRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, rec := range r.store.characters {
		if rec.ID == id {
			return rec, nil
		}
	}
	return ports.CharacterRecord{}, ports.ErrNotFound
}

var _ ports.CharacterRepository = CharacterRepo{}

type DestinationRepo struct {
	store *Store
}

func NewDestinationRepo(store *Store) DestinationRepo {
	return DestinationRepo{store: store}
}

func (r DestinationRepo) SetCurrent(_ context.Context, rec ports.DestinationRecord, keepRecent int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.destinations[rec.CharacterID] = rec
	recents := append([]ports.DestinationRecord{rec}, r.store.recent[rec.CharacterID]...)
	if keepRecent > 0 && len(recents) > keepRecent {
		recents = recents[:keepRecent]
	}
	r.store.recent[rec.CharacterID] = recents
	return nil
}

func (r DestinationRepo) Current(_ context.Context, characterID string) (ports.DestinationRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.destinations[characterID]
	if !ok {
		return ports.DestinationRecord{}, ports.ErrNotFound
	}
	return rec, nil
}

func (r DestinationRepo) Recent(_ context.Context, characterID string, limit int) ([]ports.DestinationRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	recs := r.store.recent[characterID]
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return append([]ports.DestinationRecord(nil), recs...), nil
}

func (r DestinationRepo) Clear(_ context.Context, characterID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.destinations, characterID)
	return nil
}

var _ ports.DestinationRepository = DestinationRepo{}

type SettingRepo struct {
	store *Store
}

func NewSettingRepo(store *Store) SettingRepo {
	return SettingRepo{store: store}
}

func (r SettingRepo) SaveZoom(_ context.Context, characterID string, zoom int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.zoom[characterID] = zoom
	return nil
}

func (r SettingRepo) Zoom(_ context.Context, characterID string) (int, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	z, ok := r.store.zoom[characterID]
	return z, ok, nil
}

var _ ports.SettingRepository = SettingRepo{}
