package visited

import (
	"context"
	"sync"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
	"github.com/CHIEF1K/cape-quest-paths/internal/stream"
)

// Discovery records the first time a gem was visited.
type Discovery struct {
	GemID string    `json:"gem_id"`
	Name  string    `json:"name"`
	At    time.Time `json:"at"`
}

// Tracker owns the union-only visited-gem set. Every location update is
// cross-checked against the catalog; a gem enters the set exactly once and
// raises exactly one discovery event. The scan is O(catalog), fine for the
// tens of gems this catalog holds.
type Tracker struct {
	catalog     *gem.Catalog
	store       route.Store
	hub         *stream.Hub
	thresholdKm float64

	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
	log   []Discovery
}

var nowFn = time.Now

func NewTracker(catalog *gem.Catalog, store route.Store, hub *stream.Hub, thresholdKm float64) *Tracker {
	if thresholdKm <= 0 {
		thresholdKm = geo.VisitThresholdKm
	}
	return &Tracker{
		catalog:     catalog,
		store:       store,
		hub:         hub,
		thresholdKm: thresholdKm,
		seen:        map[string]struct{}{},
	}
}

// Restore loads the persisted visited set. Unknown ids are kept; the
// catalog may grow back around them later.
func (t *Tracker) Restore(ctx context.Context) error {
	ids, err := t.store.Visited(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		if _, ok := t.seen[id]; ok {
			continue
		}
		t.seen[id] = struct{}{}
		t.order = append(t.order, id)
	}
	return nil
}

// Observe cross-checks a location against every not-yet-visited gem and
// returns the newly discovered ones. Processing the same location twice is
// a no-op the second time. The updated set is persisted immediately; a
// persistence failure is returned after the in-memory set is updated, so
// the union survives either way.
func (t *Tracker) Observe(ctx context.Context, at geo.Coordinate) ([]gem.Gem, error) {
	t.mu.Lock()
	var found []gem.Gem
	now := nowFn()
	for _, g := range t.catalog.All() {
		if _, ok := t.seen[g.ID]; ok {
			continue
		}
		if geo.IsWithin(at, g.Coordinate(), t.thresholdKm) {
			t.seen[g.ID] = struct{}{}
			t.order = append(t.order, g.ID)
			t.log = append(t.log, Discovery{GemID: g.ID, Name: g.Name, At: now})
			found = append(found, g)
		}
	}
	snapshot := append([]string(nil), t.order...)
	t.mu.Unlock()

	if len(found) == 0 {
		return nil, nil
	}

	if t.hub != nil {
		for _, g := range found {
			t.hub.Publish(stream.TopicDiscoveries, stream.Event{Type: "discovery", Data: Discovery{GemID: g.ID, Name: g.Name, At: now}})
		}
	}

	return found, t.store.SaveVisited(ctx, snapshot)
}

// Snapshot returns the visited gem ids in discovery order.
func (t *Tracker) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// Discoveries returns this session's discovery log, oldest first.
func (t *Tracker) Discoveries() []Discovery {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Discovery(nil), t.log...)
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}
