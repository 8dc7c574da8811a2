package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("RBCMAP_DB_DSN")
	if dsn == "" {
		t.Skip("RBCMAP_DB_DSN is required for integration test")
	}
	return dsn
}

func TestDestinationRepo_CurrentRecentAndClearLifecycle(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	characterID := "it-dest-lifecycle"
	_ = db.Exec("DELETE FROM destinations WHERE character_id = ?", characterID).Error
	_ = db.Exec("DELETE FROM characters WHERE id = ?", characterID).Error

	characters := NewCharacterRepo(db)
	if err := characters.Create(ctx, ports.CharacterRecord{
		ID:           characterID,
		Name:         characterID,
		PasswordHash: []byte("x"),
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed character: %v", err)
	}

	repo := NewDestinationRepo(db)
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 12; i++ {
		err := repo.SetCurrent(ctx, ports.DestinationRecord{
			CharacterID: characterID,
			Loc:         grid.Location{Col: i, Row: i},
			SetAt:       base.Add(time.Duration(i) * time.Second),
		}, 10)
		if err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}

	cur, err := repo.Current(ctx, characterID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.Loc != (grid.Location{Col: 11, Row: 11}) {
		t.Fatalf("unexpected current: %+v", cur.Loc)
	}

	recent, err := repo.Recent(ctx, characterID, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected pruning to 10 rows, got %d", len(recent))
	}
	if recent[0].Loc != (grid.Location{Col: 11, Row: 11}) {
		t.Fatalf("newest first expected, got %+v", recent[0].Loc)
	}
	if recent[9].Loc != (grid.Location{Col: 2, Row: 2}) {
		t.Fatalf("oldest kept row mismatch: %+v", recent[9].Loc)
	}

	if err := repo.Clear(ctx, characterID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := repo.Current(ctx, characterID); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}

	// Clearing drops only the current destination, never the history.
	recent, err = repo.Recent(ctx, characterID, 10)
	if err != nil {
		t.Fatalf("recent after clear: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("history lost on clear: recent length %d", len(recent))
	}

	// A destination set after a clear becomes current again.
	if err := repo.SetCurrent(ctx, ports.DestinationRecord{
		CharacterID: characterID,
		Loc:         grid.Location{Col: 99, Row: 99},
		SetAt:       base.Add(time.Minute),
	}, 10); err != nil {
		t.Fatalf("set after clear: %v", err)
	}
	cur, err = repo.Current(ctx, characterID)
	if err != nil || cur.Loc != (grid.Location{Col: 99, Row: 99}) {
		t.Fatalf("current after reset: %+v err=%v", cur.Loc, err)
	}
}

func TestDestinationRepo_TransitLocRoundtrip(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	characterID := "it-dest-transit"
	_ = db.Exec("DELETE FROM destinations WHERE character_id = ?", characterID).Error
	_ = db.Exec("DELETE FROM characters WHERE id = ?", characterID).Error

	characters := NewCharacterRepo(db)
	if err := characters.Create(ctx, ports.CharacterRecord{
		ID:           characterID,
		Name:         characterID,
		PasswordHash: []byte("x"),
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed character: %v", err)
	}

	repo := NewDestinationRepo(db)
	station := grid.Location{Col: 41, Row: 49}
	if err := repo.SetCurrent(ctx, ports.DestinationRecord{
		CharacterID: characterID,
		Loc:         grid.Location{Col: 81, Row: 99},
		TransitLoc:  &station,
		SetAt:       time.Now().UTC(),
	}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}

	cur, err := repo.Current(ctx, characterID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.TransitLoc == nil || *cur.TransitLoc != station {
		t.Fatalf("transit loc mismatch: %+v", cur.TransitLoc)
	}
}

func TestSettingRepo_ZoomUpsert(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	characterID := "it-setting-zoom"
	_ = db.Exec("DELETE FROM settings WHERE character_id = ?", characterID).Error
	_ = db.Exec("DELETE FROM characters WHERE id = ?", characterID).Error

	characters := NewCharacterRepo(db)
	if err := characters.Create(ctx, ports.CharacterRecord{
		ID:           characterID,
		Name:         characterID,
		PasswordHash: []byte("x"),
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed character: %v", err)
	}

	repo := NewSettingRepo(db)
	if _, ok, err := repo.Zoom(ctx, characterID); err != nil || ok {
		t.Fatalf("expected no saved zoom, got ok=%v err=%v", ok, err)
	}
	if err := repo.SaveZoom(ctx, characterID, 5); err != nil {
		t.Fatalf("save zoom: %v", err)
	}
	if err := repo.SaveZoom(ctx, characterID, 9); err != nil {
		t.Fatalf("upsert zoom: %v", err)
	}
	zoom, ok, err := repo.Zoom(ctx, characterID)
	if err != nil || !ok {
		t.Fatalf("read zoom: ok=%v err=%v", ok, err)
	}
	if zoom != 9 {
		t.Fatalf("expected last written zoom 9, got %d", zoom)
	}
}

func TestCharacterRepo_DuplicateNameConflict(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	name := "it-char-duplicate"
	_ = db.Exec("DELETE FROM characters WHERE name = ?", name).Error

	repo := NewCharacterRepo(db)
	first := ports.CharacterRecord{ID: name + "-1", Name: name, PasswordHash: []byte("x"), CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := ports.CharacterRecord{ID: name + "-2", Name: name, PasswordHash: []byte("x"), CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, second); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
