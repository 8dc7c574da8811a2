package mapdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rbcmap/internal/app/ports"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

var ErrNotConfigured = errors.New("map data source not configured")

// ReloadUseCase rebuilds the snapshot from the data source and swaps it
// into the holder. Malformed rows are skipped and counted, never fatal:
// upstream scrapes regularly carry placeholder coordinates.
type ReloadUseCase struct {
	Repo        ports.MapDataRepository
	Holder      *Holder
	Grid        grid.Config
	AlleyOffset int
	Metrics     ports.QueryMetrics
	Now         func() time.Time
}

type ReloadResponse struct {
	Streets        int            `json:"streets"`
	StreetsSkipped int            `json:"streets_skipped"`
	POIs           poi.LoadReport `json:"pois"`
	LoadedAt       time.Time      `json:"loaded_at"`
}

func (u ReloadUseCase) Execute(ctx context.Context) (ReloadResponse, error) {
	if u.Repo == nil || u.Holder == nil {
		return ReloadResponse{}, ErrNotConfigured
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	streets, err := u.Repo.Streets(ctx)
	if err != nil {
		return ReloadResponse{}, fmt.Errorf("load streets: %w", err)
	}
	records, err := u.Repo.POIs(ctx)
	if err != nil {
		return ReloadResponse{}, fmt.Errorf("load pois: %w", err)
	}

	registry, streetsSkipped := grid.BuildRegistry(u.Grid, streets)
	store, report := poi.BuildStore(registry, records, u.AlleyOffset)

	snapshot := &Snapshot{
		Registry: registry,
		POIs:     store,
		Report:   report,
		LoadedAt: nowFn(),
	}
	u.Holder.Swap(snapshot)

	if u.Metrics != nil {
		u.Metrics.RecordReload(report)
	}
	return ReloadResponse{
		Streets:        len(streets) - streetsSkipped,
		StreetsSkipped: streetsSkipped,
		POIs:           report,
		LoadedAt:       snapshot.LoadedAt,
	}, nil
}
