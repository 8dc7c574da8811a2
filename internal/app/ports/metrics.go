package ports

import "rbcmap/internal/domain/poi"

// QueryMetrics counts interactive map queries and snapshot reloads so
// the ops endpoint can report usage and skipped-record drift.
type QueryMetrics interface {
	RecordQuery(kind string)
	RecordQueryMiss(kind string)
	RecordReload(report poi.LoadReport)
}
