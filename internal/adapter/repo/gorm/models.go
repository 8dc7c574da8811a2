package gormrepo

import "time"

// Row types mirror the reference map schema the importer fills. Axis is
// "column" or "row"; POIs are stored by street name, not coordinate, so
// a street rename fixes every POI on it in one place.
type streetRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Axis       string `gorm:"column:axis"`
	Name       string `gorm:"column:name"`
	Coordinate int    `gorm:"column:coordinate"`
}

func (streetRow) TableName() string { return "streets" }

type poiRow struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	Category   string     `gorm:"column:category"`
	Name       string     `gorm:"column:name"`
	ColStreet  string     `gorm:"column:col_street"`
	RowStreet  string     `gorm:"column:row_street"`
	NextUpdate *time.Time `gorm:"column:next_update"`
}

func (poiRow) TableName() string { return "pois" }

type characterRow struct {
	ID           string    `gorm:"primaryKey;column:id"`
	Name         string    `gorm:"column:name;uniqueIndex"`
	PasswordHash []byte    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (characterRow) TableName() string { return "characters" }

// Current marks the one active destination among a character's rows;
// the rest of the rows are the recent history, which outlives a clear.
type destinationRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	CharacterID string    `gorm:"column:character_id;index"`
	Col         int       `gorm:"column:col"`
	Row         int       `gorm:"column:row"`
	TransitCol  *int      `gorm:"column:transit_col"`
	TransitRow  *int      `gorm:"column:transit_row"`
	Current     bool      `gorm:"column:current"`
	SetAt       time.Time `gorm:"column:set_at"`
}

func (destinationRow) TableName() string { return "destinations" }

type settingRow struct {
	CharacterID string `gorm:"primaryKey;column:character_id"`
	Zoom        int    `gorm:"column:zoom"`
}

func (settingRow) TableName() string { return "settings" }
