package mapview

import (
	"context"

	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/recorder"
	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/visited"
)

// View assembles the map layers: gem markers, saved route lines and the
// live recording overlay. It renders nothing itself, it feeds whatever
// map widget the client runs.
type View struct {
	catalog *gem.Catalog
	store   route.Store
	tracker *visited.Tracker
	rec     *recorder.Recorder
}

func NewView(catalog *gem.Catalog, store route.Store, tracker *visited.Tracker, rec *recorder.Recorder) *View {
	return &View{catalog: catalog, store: store, tracker: tracker, rec: rec}
}

// GemMarkers returns every gem in the given categories as a Point
// feature, styled by category and flagged when already visited.
func (v *View) GemMarkers(categories []gem.Category) *FeatureCollection {
	seen := map[string]struct{}{}
	if v.tracker != nil {
		for _, id := range v.tracker.Snapshot() {
			seen[id] = struct{}{}
		}
	}

	fc := NewFeatureCollection()
	for _, g := range v.catalog.FilterByCategory(categories) {
		_, visitedGem := seen[g.ID]
		fc.Add(Feature{
			Type:     "Feature",
			Geometry: pointGeometry(g.Coordinate()),
			Properties: map[string]any{
				"id":       g.ID,
				"name":     g.Name,
				"category": string(g.Category),
				"color":    gem.CategoryColors[g.Category],
				"icon":     gem.CategoryIcons[g.Category],
				"visited":  visitedGem,
			},
		})
	}
	return fc
}

// RouteLines returns every saved route as a LineString feature.
func (v *View) RouteLines(ctx context.Context) (*FeatureCollection, error) {
	routes, err := v.store.Routes(ctx)
	if err != nil {
		return nil, err
	}

	fc := NewFeatureCollection()
	for _, r := range routes {
		if len(r.Path) < 2 {
			continue
		}
		fc.Add(Feature{
			Type:     "Feature",
			Geometry: lineGeometry(r.Path),
			Properties: map[string]any{
				"id":           r.ID,
				"name":         r.Name,
				"distance_km":  r.DistanceKm,
				"duration_sec": r.DurationSec,
			},
		})
	}
	return fc, nil
}

// LiveOverlay returns the in-progress recording as a single LineString,
// or an empty collection when idle or too short to draw.
func (v *View) LiveOverlay() *FeatureCollection {
	fc := NewFeatureCollection()
	if v.rec == nil {
		return fc
	}

	st := v.rec.Status()
	path := v.rec.Path()
	if st.State != recorder.StateRecording || len(path) < 2 {
		return fc
	}
	fc.Add(Feature{
		Type:     "Feature",
		Geometry: lineGeometry(path),
		Properties: map[string]any{
			"live":        true,
			"points":      st.Points,
			"distance_km": st.DistanceKm,
			"elapsed_sec": st.ElapsedSec,
		},
	})
	return fc
}
