package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	kmlexport "rbcmap/internal/adapter/export/kml"
	httpadapter "rbcmap/internal/adapter/http"
	metricsinmem "rbcmap/internal/adapter/metrics/inmemory"
	gormrepo "rbcmap/internal/adapter/repo/gorm"
	"rbcmap/internal/adapter/repo/memory"
	"rbcmap/internal/app/auth"
	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/app/ports"
	"rbcmap/internal/app/query"
	"rbcmap/internal/app/session"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/route"
	"rbcmap/internal/domain/viewport"
)

const alleyOffset = 1

var rootCmd = &cobra.Command{
	Use:   "rbcmap",
	Short: "RavenBlack City map companion",
	Long:  `Grid registry, nearest-POI queries, AP route costs and minimap windows for the city, served over HTTP or exported as KML.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the map query API",
	RunE:  runServe,
}

var exportKMLCmd = &cobra.Command{
	Use:   "export-kml",
	Short: "Export loaded POIs as a KML file",
	RunE:  runExportKML,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations",
	RunE:  runMigrate,
}

func main() {
	pf := rootCmd.PersistentFlags()
	pf.String("dsn", os.Getenv("RBCMAP_DB_DSN"), "postgres DSN (empty runs on the built-in demo city)")
	pf.Int("grid-min", intEnv("RBCMAP_GRID_MIN", 0), "lowest grid coordinate")
	pf.Int("grid-max", intEnv("RBCMAP_GRID_MAX", 200), "highest grid coordinate")
	pf.Int("transit-cost", intEnv("RBCMAP_TRANSIT_COST", 10), "flat AP fare for one transit ride")

	serveCmd.Flags().String("listen", envOr("RBCMAP_LISTEN", ":8080"), "listen address")
	serveCmd.Flags().String("jwt-secret", os.Getenv("RBCMAP_JWT_SECRET"), "HMAC secret for session tokens")
	serveCmd.Flags().Int("default-zoom", intEnv("RBCMAP_DEFAULT_ZOOM", 5), "viewport size used when a character has no saved zoom")
	serveCmd.Flags().String("zoom-levels", envOr("RBCMAP_ZOOM_LEVELS", ""), "comma-separated zoom ladder, e.g. 3,5,7,9")

	exportKMLCmd.Flags().StringP("out", "o", "", "output file; '-' writes to stdout (default: timestamped name)")

	migrateCmd.Flags().String("dir", envOr("RBCMAP_MIGRATIONS_DIR", "./migrations"), "migration directory")

	rootCmd.AddCommand(serveCmd, exportKMLCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	gridCfg, err := gridConfig(cmd)
	if err != nil {
		return err
	}
	transitCost, _ := cmd.Flags().GetInt("transit-cost")
	listen, _ := cmd.Flags().GetString("listen")
	defaultZoom, _ := cmd.Flags().GetInt("default-zoom")

	secret, _ := cmd.Flags().GetString("jwt-secret")
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("--jwt-secret (or RBCMAP_JWT_SECRET) is required")
	}

	mapRepo, characters, destinations, settings, err := buildRepos(cmd)
	if err != nil {
		return err
	}

	recorder := metricsinmem.NewRecorder()
	holder := mapdata.NewHolder(gridCfg)
	reloadUC := mapdata.ReloadUseCase{
		Repo:        mapRepo,
		Holder:      holder,
		Grid:        gridCfg,
		AlleyOffset: alleyOffset,
		Metrics:     recorder,
	}
	report, err := reloadUC.Execute(context.Background())
	if err != nil {
		return fmt.Errorf("initial map load: %w", err)
	}
	log.WithFields(log.Fields{
		"streets":      report.Streets,
		"pois":         report.POIs.Loaded,
		"pois_skipped": report.POIs.Skipped,
	}).Info("map data loaded")

	zoomCfg, err := zoomConfig(cmd)
	if err != nil {
		return err
	}

	calc := route.Calculator{TransitRideCost: transitCost}
	secretBytes := []byte(secret)

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{Characters: characters, Secret: secretBytes},
		LoginUC:    auth.LoginUseCase{Characters: characters, Secret: secretBytes},
		VerifyUC:   auth.VerifyUseCase{Secret: secretBytes},
		NearbyUC:   query.NearbyUseCase{Holder: holder, Metrics: recorder},
		RouteUC:    query.RouteUseCase{Holder: holder, Calc: calc, Metrics: recorder},
		ViewportUC: query.ViewportUseCase{Holder: holder, Zoom: zoomCfg, Metrics: recorder},
		ReloadUC:   reloadUC,
		SessionUC: session.UseCase{
			Destinations: destinations,
			Settings:     settings,
			Holder:       holder,
			Calc:         calc,
		},
		DefaultZoom: defaultZoom,
		KPI:         recorder,
	}

	s := server.Default(server.WithHostPorts(listen))
	h.RegisterRoutes(s)

	log.WithField("listen", listen).Info("rbcmap server listening")
	s.Spin()
	return nil
}

func runExportKML(cmd *cobra.Command, _ []string) error {
	gridCfg, err := gridConfig(cmd)
	if err != nil {
		return err
	}
	mapRepo, _, _, _, err := buildRepos(cmd)
	if err != nil {
		return err
	}

	holder := mapdata.NewHolder(gridCfg)
	reloadUC := mapdata.ReloadUseCase{
		Repo:        mapRepo,
		Holder:      holder,
		Grid:        gridCfg,
		AlleyOffset: alleyOffset,
	}
	if _, err := reloadUC.Execute(context.Background()); err != nil {
		return fmt.Errorf("load map data: %w", err)
	}

	exporter := kmlexport.Exporter{Holder: holder}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		return exporter.Write(os.Stdout)
	}
	if out == "" {
		out = kmlexport.Filename(holder.Current())
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := exporter.Write(f); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	log.WithField("file", out).Info("kml export written")
	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	dsn, _ := cmd.Flags().GetString("dsn")
	if strings.TrimSpace(dsn) == "" {
		return fmt.Errorf("--dsn (or RBCMAP_DB_DSN) is required for migrate")
	}
	dir, _ := cmd.Flags().GetString("dir")

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	applied, err := gormrepo.ApplyMigrations(context.Background(), db, dir)
	if err != nil {
		return err
	}
	log.WithField("applied", applied).Info("migrations up to date")
	return nil
}

// buildRepos wires postgres-backed repositories when a DSN is set and
// falls back to the in-memory demo city otherwise, so the tool works
// without any infrastructure for local exploration.
func buildRepos(cmd *cobra.Command) (ports.MapDataRepository, ports.CharacterRepository, ports.DestinationRepository, ports.SettingRepository, error) {
	dsn, _ := cmd.Flags().GetString("dsn")
	if strings.TrimSpace(dsn) == "" {
		log.Warn("no DSN configured, serving the built-in demo city from memory")
		store := memory.NewStore()
		memory.SeedDemoCity(store)
		return memory.NewMapDataRepo(store), memory.NewCharacterRepo(store), memory.NewDestinationRepo(store), memory.NewSettingRepo(store), nil
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	return gormrepo.NewMapDataRepo(db), gormrepo.NewCharacterRepo(db), gormrepo.NewDestinationRepo(db), gormrepo.NewSettingRepo(db), nil
}

func gridConfig(cmd *cobra.Command) (grid.Config, error) {
	min, _ := cmd.Flags().GetInt("grid-min")
	max, _ := cmd.Flags().GetInt("grid-max")
	if min < 0 || max <= min {
		return grid.Config{}, fmt.Errorf("invalid grid bounds [%d,%d]", min, max)
	}
	return grid.Config{MinCoord: min, MaxCoord: max}, nil
}

func zoomConfig(cmd *cobra.Command) (viewport.Config, error) {
	raw, _ := cmd.Flags().GetString("zoom-levels")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return viewport.DefaultConfig(), nil
	}
	var levels []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return viewport.Config{}, fmt.Errorf("invalid zoom level %q", part)
		}
		levels = append(levels, n)
	}
	return viewport.Config{Levels: levels}, nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
