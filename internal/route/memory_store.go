package route

import (
	"context"
	"sync"
)

// MemoryStore is the fallback when neither Postgres nor Redis is available,
// and the store double used across package tests. Same semantics, no
// durability.
type MemoryStore struct {
	mu      sync.Mutex
	routes  []Route
	visited []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveRoute(_ context.Context, r Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, r)
	return nil
}

func (s *MemoryStore) Routes(_ context.Context) ([]Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out, nil
}

func (s *MemoryStore) Route(_ context.Context, id string) (Route, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.routes {
		if r.ID == id {
			return r, true, nil
		}
	}
	return Route{}, false, nil
}

func (s *MemoryStore) SaveVisited(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visited = append([]string(nil), ids...)
	return nil
}

func (s *MemoryStore) Visited(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...), nil
}
