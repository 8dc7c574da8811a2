package route

import (
	"sort"

	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// Nearest returns the rank-th closest POI of a category, its Chebyshev
// distance from the query point, and whether such a POI exists. Rank 1
// is the closest. Equal distances keep the store's load order, so the
// result is deterministic for a given snapshot. A rank past the number
// of POIs in the category reports ok=false; that is an expected
// outcome, not an error.
func Nearest(store *poi.Store, from grid.Location, cat poi.Category, rank int) (poi.POI, int, bool) {
	if rank < 1 {
		return poi.POI{}, 0, false
	}
	candidates := store.AllOfCategory(cat)
	if rank > len(candidates) {
		return poi.POI{}, 0, false
	}

	type ranked struct {
		p    poi.POI
		dist int
	}
	byDist := make([]ranked, len(candidates))
	for i, p := range candidates {
		byDist[i] = ranked{p: p, dist: grid.Distance(from, p.Loc)}
	}
	sort.SliceStable(byDist, func(i, j int) bool {
		return byDist[i].dist < byDist[j].dist
	})
	hit := byDist[rank-1]
	return hit.p, hit.dist, true
}
