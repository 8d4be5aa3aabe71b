package geo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/golang/geo/s2"
)

const (
	// EarthRadiusKm is the mean Earth radius used for all distance math.
	EarthRadiusKm = 6371.0

	// VisitThresholdKm is the default proximity below which a location
	// counts as having visited a point of interest.
	VisitThresholdKm = 0.1
)

// Coordinate is a WGS84 position. The canonical ordering is latitude first;
// conversion to lng-first representations (GeoJSON) happens at the map
// adapter boundary, never here.
type Coordinate struct {
	Lat float64
	Lng float64
}

// MarshalJSON encodes the coordinate as a two-element [lat, lng] array,
// the wire form used by persisted routes and share links.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [lat, lng] pair: %w", err)
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// DistanceKm returns the great-circle distance to another coordinate.
func (c Coordinate) DistanceKm(o Coordinate) float64 {
	return HaversineKm(c.Lat, c.Lng, o.Lat, o.Lng)
}

// IsWithin reports whether target lies within thresholdKm of origin.
func IsWithin(origin, target Coordinate, thresholdKm float64) bool {
	return origin.DistanceKm(target) <= thresholdKm
}

// PathDistanceKm sums the great-circle distances over consecutive pairs of
// the path. Paths shorter than two points have zero length.
func PathDistanceKm(path []Coordinate) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].DistanceKm(path[i])
	}
	return total
}

// Locatable is anything with a position, e.g. a catalog gem.
type Locatable interface {
	Coordinate() Coordinate
}

// SortByDistance returns a copy of items in non-decreasing distance from
// origin. The sort is stable so equidistant items keep their input order.
func SortByDistance[T Locatable](origin Coordinate, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return origin.DistanceKm(out[i].Coordinate()) < origin.DistanceKm(out[j].Coordinate())
	})
	return out
}
