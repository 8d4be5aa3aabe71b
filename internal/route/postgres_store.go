package route

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/CHIEF1K/cape-quest-paths/internal/db"

	"github.com/jackc/pgx/v5"
)

// PostgresStore keeps routes as rows with a jsonb path, the durable option
// when a Postgres pool is configured.
type PostgresStore struct {
	db db.Querier
}

func NewPostgresStore(q db.Querier) *PostgresStore {
	return &PostgresStore{db: q}
}

// EnsureSchema creates the tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			path JSONB NOT NULL,
			distance_km DOUBLE PRECISION NOT NULL,
			duration_sec BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			visited_gems JSONB NOT NULL
		)
	`); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS visited_gems (
			gem_id TEXT PRIMARY KEY,
			discovered_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

func (s *PostgresStore) SaveRoute(ctx context.Context, r Route) error {
	path, err := json.Marshal(r.Path)
	if err != nil {
		return err
	}
	visited, err := json.Marshal(r.VisitedGems)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO routes (id, name, path, distance_km, duration_sec, created_at, visited_gems)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, r.ID, r.Name, path, r.DistanceKm, r.DurationSec, r.CreatedAt, visited)
	return err
}

func (s *PostgresStore) Routes(ctx context.Context) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, path, distance_km, duration_sec, created_at, visited_gems
		FROM routes
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (s *PostgresStore) Route(ctx context.Context, id string) (Route, bool, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, path, distance_km, duration_sec, created_at, visited_gems
		FROM routes WHERE id=$1
	`, id)
	r, err := scanRoute(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Route{}, false, nil
	}
	if err != nil {
		return Route{}, false, err
	}
	return r, true, nil
}

func (s *PostgresStore) SaveVisited(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO visited_gems (gem_id)
			VALUES ($1)
			ON CONFLICT (gem_id) DO NOTHING
		`, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Visited(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT gem_id FROM visited_gems ORDER BY discovered_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRoute(row pgx.Row) (Route, error) {
	var r Route
	var path, visited []byte
	if err := row.Scan(&r.ID, &r.Name, &path, &r.DistanceKm, &r.DurationSec, &r.CreatedAt, &visited); err != nil {
		return Route{}, err
	}
	if err := json.Unmarshal(path, &r.Path); err != nil {
		log.Printf("route store: corrupt path for %s: %v", r.ID, err)
		r.Path = nil
	}
	if err := json.Unmarshal(visited, &r.VisitedGems); err != nil {
		r.VisitedGems = nil
	}
	return r, nil
}
