package mapdata

import (
	"sync/atomic"
	"time"

	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// Snapshot bundles one consistent generation of reference map data.
// Queries take the whole snapshot; a reload never mutates one in place.
type Snapshot struct {
	Registry *grid.Registry
	POIs     *poi.Store
	Report   poi.LoadReport
	LoadedAt time.Time
}

// Holder publishes the current snapshot to query paths. Reload is the
// only writer and swaps a fully built snapshot in one pointer store, so
// a query in flight always sees either the old or the new generation,
// never a mix.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder starts with an empty snapshot so queries before the first
// load answer "nothing found" instead of failing.
func NewHolder(cfg grid.Config) *Holder {
	h := &Holder{}
	reg, _ := grid.BuildRegistry(cfg, nil)
	h.current.Store(&Snapshot{
		Registry: reg,
		POIs:     poi.EmptyStore(),
	})
	return h
}

func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

func (h *Holder) Swap(s *Snapshot) {
	h.current.Store(s)
}
