package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// MapDataRepo reads the reference map rows the scraper/importer keeps
// in postgres. Order matters: the load order of POI rows is the
// tie-break order for nearest queries, so both listings sort by id.
type MapDataRepo struct {
	db *gorm.DB
}

func NewMapDataRepo(db *gorm.DB) MapDataRepo {
	return MapDataRepo{db: db}
}

func (r MapDataRepo) Streets(ctx context.Context) ([]grid.StreetRecord, error) {
	var rows []streetRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]grid.StreetRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, grid.StreetRecord{
			Axis:       grid.Axis(row.Axis),
			Name:       row.Name,
			Coordinate: row.Coordinate,
		})
	}
	return out, nil
}

func (r MapDataRepo) POIs(ctx context.Context) ([]poi.Record, error) {
	var rows []poiRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]poi.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, poi.Record{
			Name:       row.Name,
			Category:   poi.Category(row.Category),
			Column:     row.ColStreet,
			Row:        row.RowStreet,
			NextUpdate: row.NextUpdate,
		})
	}
	return out, nil
}

// ReplaceMapData swaps the stored reference rows inside one
// transaction, used by the import command after a full scrape.
func (r MapDataRepo) ReplaceMapData(ctx context.Context, streets []grid.StreetRecord, pois []poi.Record) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM pois`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM streets`).Error; err != nil {
			return err
		}
		for _, s := range streets {
			row := streetRow{Axis: string(s.Axis), Name: s.Name, Coordinate: s.Coordinate}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, p := range pois {
			row := poiRow{
				Category:   string(p.Category),
				Name:       p.Name,
				ColStreet:  p.Column,
				RowStreet:  p.Row,
				NextUpdate: p.NextUpdate,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
