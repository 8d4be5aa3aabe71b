package visited

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
	"github.com/CHIEF1K/cape-quest-paths/internal/stream"
)

// lionsHead is gem "1"; also the location of gem "5" (The Crypt shares the
// same published coordinates in the catalog).
var lionsHead = geo.Coordinate{Lat: -33.9249, Lng: 18.4241}

func newTracker(t *testing.T) (*Tracker, *route.MemoryStore) {
	t.Helper()
	store := route.NewMemoryStore()
	return NewTracker(gem.DefaultCatalog(), store, nil, 0), store
}

func TestObserveDiscoversNearbyGems(t *testing.T) {
	tracker, store := newTracker(t)

	found, err := tracker.Observe(context.Background(), lionsHead)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	// Gems 1 and 5 share these coordinates; 7 is ~460m away and must not match.
	if len(found) != 2 {
		t.Fatalf("expected 2 discoveries, got %d", len(found))
	}

	ids, _ := store.Visited(context.Background())
	if len(ids) != 2 {
		t.Fatalf("expected persisted set of 2, got %v", ids)
	}
}

func TestObserveIdempotent(t *testing.T) {
	tracker, _ := newTracker(t)
	ctx := context.Background()

	first, _ := tracker.Observe(ctx, lionsHead)
	second, err := tracker.Observe(ctx, lionsHead)
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	if len(first) == 0 || len(second) != 0 {
		t.Fatalf("same location processed twice must discover once: %d then %d", len(first), len(second))
	}
	if tracker.Count() != len(first) {
		t.Fatalf("set grew on repeat observation")
	}
}

func TestObserveThresholdBoundary(t *testing.T) {
	tracker, _ := newTracker(t)
	ctx := context.Background()

	// 0.1001 km north of Lion's Head: outside the 0.1 km threshold.
	outside := geo.Coordinate{Lat: lionsHead.Lat + 0.1001/111.19, Lng: lionsHead.Lng}
	if found, _ := tracker.Observe(ctx, outside); len(found) != 0 {
		t.Fatalf("expected nothing at 0.1001 km, got %d", len(found))
	}

	// 0.0999 km north: inside.
	inside := geo.Coordinate{Lat: lionsHead.Lat + 0.0999/111.19, Lng: lionsHead.Lng}
	if found, _ := tracker.Observe(ctx, inside); len(found) == 0 {
		t.Fatalf("expected discovery at 0.0999 km")
	}
}

func TestObserveNeverRemoves(t *testing.T) {
	tracker, _ := newTracker(t)
	ctx := context.Background()

	tracker.Observe(ctx, lionsHead)
	before := tracker.Count()

	// Far away from everything.
	tracker.Observe(ctx, geo.Coordinate{Lat: 0, Lng: 0})
	if tracker.Count() != before {
		t.Fatalf("visited set shrank")
	}
}

func TestObservePublishesDiscoveryEvents(t *testing.T) {
	hub := stream.NewHub(nil)
	client := hub.Register(stream.TopicDiscoveries)
	defer hub.Unregister(client)

	tracker := NewTracker(gem.DefaultCatalog(), route.NewMemoryStore(), hub, 0)
	found, _ := tracker.Observe(context.Background(), lionsHead)

	if len(client.Send) != len(found) {
		t.Fatalf("expected %d events, got %d", len(found), len(client.Send))
	}
}

func TestRestore(t *testing.T) {
	store := route.NewMemoryStore()
	_ = store.SaveVisited(context.Background(), []string{"1", "5"})

	tracker := NewTracker(gem.DefaultCatalog(), store, nil, 0)
	if err := tracker.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if tracker.Count() != 2 {
		t.Fatalf("expected 2 restored, got %d", tracker.Count())
	}

	// Restored gems are not rediscovered.
	found, _ := tracker.Observe(context.Background(), lionsHead)
	if len(found) != 0 {
		t.Fatalf("expected no rediscovery, got %d", len(found))
	}
}

func TestRestoreStoreError(t *testing.T) {
	tracker := NewTracker(gem.DefaultCatalog(), errVisitedStore{}, nil, 0)
	if err := tracker.Restore(context.Background()); err == nil {
		t.Fatalf("expected restore error")
	}
}

func TestObservePersistErrorKeepsUnion(t *testing.T) {
	tracker := NewTracker(gem.DefaultCatalog(), errVisitedStore{}, nil, 0)

	found, err := tracker.Observe(context.Background(), lionsHead)
	if err == nil {
		t.Fatalf("expected persist error")
	}
	if len(found) == 0 || tracker.Count() != len(found) {
		t.Fatalf("in-memory union must survive persist failure")
	}
}

func TestDiscoveriesLog(t *testing.T) {
	tracker, _ := newTracker(t)
	before := time.Now()
	tracker.Observe(context.Background(), lionsHead)

	log := tracker.Discoveries()
	if len(log) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(log))
	}
	for _, d := range log {
		if d.GemID == "" || d.Name == "" || d.At.Before(before.Add(-time.Second)) {
			t.Fatalf("incomplete discovery entry: %+v", d)
		}
	}
}

type errVisitedStore struct{ route.Store }

func (errVisitedStore) Visited(context.Context) ([]string, error) {
	return nil, errors.New("visited load failed")
}

func (errVisitedStore) SaveVisited(context.Context, []string) error {
	return errors.New("visited save failed")
}
