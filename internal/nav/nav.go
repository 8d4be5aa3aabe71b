package nav

import (
	"context"
	"fmt"

	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

	"googlemaps.github.io/maps"
)

// DirectionsClient is the slice of the Google Maps client this package
// needs.
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// Directions is a walking route from the user's position to a gem.
type Directions struct {
	GemID          string  `json:"gem_id"`
	GemName        string  `json:"gem_name"`
	MapsURL        string  `json:"maps_url"`
	DistanceMeters int     `json:"distance_meters,omitempty"`
	DurationSec    int64   `json:"duration_sec,omitempty"`
	Polyline       string  `json:"polyline,omitempty"`
	Steps          []Step  `json:"steps,omitempty"`
	CrowFliesKm    float64 `json:"crow_flies_km"`
}

type Step struct {
	Instruction    string `json:"instruction"`
	DistanceMeters int    `json:"distance_meters"`
	DurationSec    int64  `json:"duration_sec"`
}

// Service answers navigate-to-gem requests. Without an API key it still
// works: it hands back a deep link into Google Maps plus the great-circle
// distance, and leaves the turn-by-turn fields empty.
type Service struct {
	client  DirectionsClient
	catalog *gem.Catalog
}

func NewService(apiKey string, catalog *gem.Catalog) (*Service, error) {
	s := &Service{catalog: catalog}
	if apiKey == "" {
		return s, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

// NewServiceWithClient injects a ready client, used by tests.
func NewServiceWithClient(client DirectionsClient, catalog *gem.Catalog) *Service {
	return &Service{client: client, catalog: catalog}
}

var errUnknownGem = fmt.Errorf("unknown gem")

func IsUnknownGem(err error) bool { return err == errUnknownGem }

// WalkingDirections routes from origin to the given gem on foot.
func (s *Service) WalkingDirections(ctx context.Context, origin geo.Coordinate, gemID string) (Directions, error) {
	g, ok := s.catalog.ByID(gemID)
	if !ok {
		return Directions{}, errUnknownGem
	}

	target := g.Coordinate()
	out := Directions{
		GemID:       g.ID,
		GemName:     g.Name,
		MapsURL:     mapsDeepLink(origin, target),
		CrowFliesKm: origin.DistanceKm(target),
	}
	if s.client == nil {
		return out, nil
	}

	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		Destination: fmt.Sprintf("%f,%f", target.Lat, target.Lng),
		Mode:        maps.TravelModeWalking,
	})
	if err != nil {
		return Directions{}, err
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return out, nil
	}

	leg := routes[0].Legs[0]
	out.DistanceMeters = leg.Distance.Meters
	out.DurationSec = int64(leg.Duration.Seconds())
	out.Polyline = routes[0].OverviewPolyline.Points
	for _, step := range leg.Steps {
		out.Steps = append(out.Steps, Step{
			Instruction:    step.HTMLInstructions,
			DistanceMeters: step.Distance.Meters,
			DurationSec:    int64(step.Duration.Seconds()),
		})
	}
	return out, nil
}

func mapsDeepLink(origin, target geo.Coordinate) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/dir/?api=1&origin=%f,%f&destination=%f,%f&travelmode=walking",
		origin.Lat, origin.Lng, target.Lat, target.Lng,
	)
}
