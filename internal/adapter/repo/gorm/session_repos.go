package gormrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
)

type CharacterRepo struct {
	db *gorm.DB
}

func NewCharacterRepo(db *gorm.DB) CharacterRepo {
	return CharacterRepo{db: db}
}

func (r CharacterRepo) Create(ctx context.Context, rec ports.CharacterRecord) error {
	row := characterRow{
		ID:           rec.ID,
		Name:         rec.Name,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return ports.ErrConflict
	}
	return err
}

func (r CharacterRepo) GetByName(ctx context.Context, name string) (ports.CharacterRecord, error) {
	var row characterRow
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CharacterRecord{}, ports.ErrNotFound
		}
		return ports.CharacterRecord{}, err
	}
	return toCharacterRecord(row), nil
}

func (r CharacterRepo) GetByID(ctx context.Context, id string) (ports.CharacterRecord, error) {
	var row characterRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CharacterRecord{}, ports.ErrNotFound
		}
		return ports.CharacterRecord{}, err
	}
	return toCharacterRecord(row), nil
}

func toCharacterRecord(row characterRow) ports.CharacterRecord {
	return ports.CharacterRecord{
		ID:           row.ID,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

// isUniqueViolation matches the postgres duplicate-key error without
// importing the driver's error types here.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "SQLSTATE 23505")
}

var _ ports.CharacterRepository = CharacterRepo{}

type DestinationRepo struct {
	db *gorm.DB
}

func NewDestinationRepo(db *gorm.DB) DestinationRepo {
	return DestinationRepo{db: db}
}

func (r DestinationRepo) SetCurrent(ctx context.Context, rec ports.DestinationRecord, keepRecent int) error {
	row := destinationRow{
		CharacterID: rec.CharacterID,
		Col:         rec.Loc.Col,
		Row:         rec.Loc.Row,
		Current:     true,
		SetAt:       rec.SetAt,
	}
	if rec.TransitLoc != nil {
		col, rw := rec.TransitLoc.Col, rec.TransitLoc.Row
		row.TransitCol = &col
		row.TransitRow = &rw
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE destinations SET current = FALSE WHERE character_id = ? AND current`, rec.CharacterID).Error; err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if keepRecent <= 0 {
			return nil
		}
		return tx.Exec(`
DELETE FROM destinations
WHERE character_id = ? AND id NOT IN (
  SELECT id FROM destinations WHERE character_id = ? ORDER BY set_at DESC, id DESC LIMIT ?
)`, rec.CharacterID, rec.CharacterID, keepRecent).Error
	})
}

func (r DestinationRepo) Current(ctx context.Context, characterID string) (ports.DestinationRecord, error) {
	var row destinationRow
	err := r.db.WithContext(ctx).
		Where("character_id = ? AND current = TRUE", characterID).
		Order("set_at DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DestinationRecord{}, ports.ErrNotFound
		}
		return ports.DestinationRecord{}, err
	}
	return toDestinationRecord(row), nil
}

func (r DestinationRepo) Recent(ctx context.Context, characterID string, limit int) ([]ports.DestinationRecord, error) {
	var rows []destinationRow
	q := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("set_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.DestinationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDestinationRecord(row))
	}
	return out, nil
}

// Clear unsets the active flag instead of deleting, so the cleared
// destination stays visible in the recent history.
func (r DestinationRepo) Clear(ctx context.Context, characterID string) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE destinations SET current = FALSE WHERE character_id = ?`, characterID).
		Error
}

func toDestinationRecord(row destinationRow) ports.DestinationRecord {
	rec := ports.DestinationRecord{
		CharacterID: row.CharacterID,
		Loc:         grid.Location{Col: row.Col, Row: row.Row},
		SetAt:       row.SetAt,
	}
	if row.TransitCol != nil && row.TransitRow != nil {
		rec.TransitLoc = &grid.Location{Col: *row.TransitCol, Row: *row.TransitRow}
	}
	return rec
}

var _ ports.DestinationRepository = DestinationRepo{}

type SettingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepo {
	return SettingRepo{db: db}
}

func (r SettingRepo) SaveZoom(ctx context.Context, characterID string, zoom int) error {
	row := settingRow{CharacterID: characterID, Zoom: zoom}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "character_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"zoom"}),
	}).Create(&row).Error
}

func (r SettingRepo) Zoom(ctx context.Context, characterID string) (int, bool, error) {
	var row settingRow
	err := r.db.WithContext(ctx).Where("character_id = ?", characterID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.Zoom, true, nil
}

var _ ports.SettingRepository = SettingRepo{}
