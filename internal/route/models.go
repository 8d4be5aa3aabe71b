package route

import (
	"context"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
)

// Route is a finalized recording. Never persisted with fewer than two path
// points; the recorder discards those before they reach a store.
type Route struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Path        []geo.Coordinate `json:"path"`
	DistanceKm  float64          `json:"distance_km"`
	DurationSec int64            `json:"duration_sec"`
	CreatedAt   time.Time        `json:"created_at"`
	VisitedGems []string         `json:"visited_gems"`
}

// Store persists the route collection and the visited-gem set. Routes are
// write-once, append-only; the visited set only ever grows.
type Store interface {
	SaveRoute(ctx context.Context, r Route) error
	Routes(ctx context.Context) ([]Route, error)
	Route(ctx context.Context, id string) (Route, bool, error)
	SaveVisited(ctx context.Context, ids []string) error
	Visited(ctx context.Context) ([]string, error)
}
