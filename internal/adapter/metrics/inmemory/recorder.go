package inmemory

import (
	"sync"

	"rbcmap/internal/domain/poi"
)

type Snapshot struct {
	QueryTotal      uint64            `json:"query_total"`
	QueryMisses     uint64            `json:"query_misses"`
	ByKind          map[string]uint64 `json:"by_kind"`
	MissesByKind    map[string]uint64 `json:"misses_by_kind"`
	Reloads         uint64            `json:"reloads"`
	RecordsLoaded   uint64            `json:"records_loaded"`
	RecordsSkipped  uint64            `json:"records_skipped"`
	LastLoadSkipped uint64            `json:"last_load_skipped"`
}

// Recorder tallies map queries and reloads for the ops endpoint. The
// skipped-record counters surface upstream data drift before it turns
// into visible gaps on the minimap.
type Recorder struct {
	mu           sync.Mutex
	byKind       map[string]uint64
	missesByKind map[string]uint64
	reloads      uint64
	loaded       uint64
	skipped      uint64
	lastSkipped  uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:       map[string]uint64{},
		missesByKind: map[string]uint64{},
	}
}

func (r *Recorder) RecordQuery(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind]++
}

func (r *Recorder) RecordQueryMiss(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missesByKind[kind]++
}

func (r *Recorder) RecordReload(report poi.LoadReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloads++
	r.loaded += uint64(report.Loaded)
	r.skipped += uint64(report.Skipped)
	r.lastSkipped = uint64(report.Skipped)
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		ByKind:          make(map[string]uint64, len(r.byKind)),
		MissesByKind:    make(map[string]uint64, len(r.missesByKind)),
		Reloads:         r.reloads,
		RecordsLoaded:   r.loaded,
		RecordsSkipped:  r.skipped,
		LastLoadSkipped: r.lastSkipped,
	}
	for k, v := range r.byKind {
		out.ByKind[k] = v
		out.QueryTotal += v
	}
	for k, v := range r.missesByKind {
		out.MissesByKind[k] = v
		out.QueryMisses += v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
