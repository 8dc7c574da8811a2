package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gormrepo "rbcmap/internal/adapter/repo/gorm"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

var importCmd = &cobra.Command{
	Use:   "import-map <file>",
	Short: "Replace the stored map data from a JSON dump",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// mapDump is the JSON shape the scrape tooling emits: street rows plus
// POI rows keyed by street names, not coordinates.
type mapDump struct {
	Streets []struct {
		Axis       string `json:"axis"`
		Name       string `json:"name"`
		Coordinate int    `json:"coordinate"`
	} `json:"streets"`
	POIs []struct {
		Category string `json:"category"`
		Name     string `json:"name"`
		Column   string `json:"column"`
		Row      string `json:"row"`
	} `json:"pois"`
}

func runImport(cmd *cobra.Command, args []string) error {
	dsn, _ := cmd.Flags().GetString("dsn")
	if strings.TrimSpace(dsn) == "" {
		return fmt.Errorf("--dsn (or RBCMAP_DB_DSN) is required for import-map")
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read dump: %w", err)
	}
	var dump mapDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}

	streets := make([]grid.StreetRecord, 0, len(dump.Streets))
	for _, s := range dump.Streets {
		streets = append(streets, grid.StreetRecord{
			Axis:       grid.Axis(s.Axis),
			Name:       s.Name,
			Coordinate: s.Coordinate,
		})
	}
	pois := make([]poi.Record, 0, len(dump.POIs))
	for _, p := range dump.POIs {
		pois = append(pois, poi.Record{
			Category: poi.Category(p.Category),
			Name:     p.Name,
			Column:   p.Column,
			Row:      p.Row,
		})
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	repo := gormrepo.NewMapDataRepo(db)
	if err := repo.ReplaceMapData(context.Background(), streets, pois); err != nil {
		return fmt.Errorf("replace map data: %w", err)
	}

	log.WithFields(log.Fields{
		"streets": len(streets),
		"pois":    len(pois),
	}).Info("map data imported")
	return nil
}
