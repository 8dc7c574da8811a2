// Package kmlexport renders a map snapshot as a KML document so the
// city can be inspected in external map viewers. The grid has no real
// geography, so cells are projected onto a small synthetic patch of
// lat/lon near the origin.
package kmlexport

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml/v2"

	"rbcmap/internal/app/mapdata"
	"rbcmap/internal/domain/grid"
	"rbcmap/internal/domain/poi"
)

// degreesPerCell spaces grid cells far enough apart that markers do
// not overlap at street-level zoom in a viewer.
const degreesPerCell = 0.0005

// Exporter writes the current snapshot's POIs as one KML folder per
// category.
type Exporter struct {
	Holder *mapdata.Holder
}

// Write renders the snapshot to w. Categories with no POIs are
// omitted.
func (e *Exporter) Write(w io.Writer) error {
	snap := e.Holder.Current()

	doc := kml.Document(kml.Name("RavenBlack City"))
	for _, cat := range poi.Categories {
		items := snap.POIs.AllOfCategory(cat)
		if len(items) == 0 {
			continue
		}
		folder := kml.Folder(kml.Name(string(cat)))
		for _, p := range items {
			folder.Add(placemark(snap, p))
		}
		doc.Add(folder)
	}

	return kml.KML(doc).WriteIndent(w, "", "  ")
}

func placemark(snap *mapdata.Snapshot, p poi.POI) kml.Element {
	return kml.Placemark(
		kml.Name(p.Name),
		kml.Description(snap.Registry.IntersectionName(p.Loc)),
		kml.Point(kml.Coordinates(project(p.Loc))),
	)
}

// project maps a grid location onto the synthetic patch: columns run
// east, rows run south from the north-west corner at (0,0).
func project(loc grid.Location) kml.Coordinate {
	return kml.Coordinate{
		Lon: float64(loc.Col) * degreesPerCell,
		Lat: -float64(loc.Row) * degreesPerCell,
	}
}

// Filename suggests a stable output name for a snapshot export.
func Filename(snap *mapdata.Snapshot) string {
	return fmt.Sprintf("rbcmap-%s.kml", snap.LoadedAt.Format("20060102-150405"))
}
