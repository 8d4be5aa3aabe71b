package route

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// Storage keys. The whole collection is rewritten on every save, matching
// the single-writer key/value layout; concurrent writers are last-write-wins.
const (
	routesKey  = "capequest:routes"
	visitedKey = "capequest:visited"
)

// RedisStore keeps the route collection and visited set as JSON documents
// under fixed keys. Corrupt or missing payloads read back as empty state,
// never as an error.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SaveRoute(ctx context.Context, r Route) error {
	routes, err := s.Routes(ctx)
	if err != nil {
		return err
	}
	routes = append(routes, r)

	payload, err := json.Marshal(routes)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, routesKey, payload, 0).Err()
}

func (s *RedisStore) Routes(ctx context.Context) ([]Route, error) {
	raw, err := s.client.Get(ctx, routesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var routes []Route
	if err := json.Unmarshal(raw, &routes); err != nil {
		log.Printf("route store: discarding corrupt collection: %v", err)
		return nil, nil
	}
	return routes, nil
}

func (s *RedisStore) Route(ctx context.Context, id string) (Route, bool, error) {
	routes, err := s.Routes(ctx)
	if err != nil {
		return Route{}, false, err
	}
	for _, r := range routes {
		if r.ID == id {
			return r, true, nil
		}
	}
	return Route{}, false, nil
}

func (s *RedisStore) SaveVisited(ctx context.Context, ids []string) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, visitedKey, payload, 0).Err()
}

func (s *RedisStore) Visited(ctx context.Context) ([]string, error) {
	raw, err := s.client.Get(ctx, visitedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		log.Printf("route store: discarding corrupt visited set: %v", err)
		return nil, nil
	}
	return ids, nil
}
