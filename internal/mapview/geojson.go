package mapview

import "github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

// GeoJSON output types. This package is the only place coordinates flip
// to the [lng, lat] order GeoJSON mandates; everywhere else in the app
// latitude comes first.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
}

func (fc *FeatureCollection) Add(f Feature) {
	fc.Features = append(fc.Features, f)
}

func pointGeometry(c geo.Coordinate) Geometry {
	return Geometry{Type: "Point", Coordinates: []float64{c.Lng, c.Lat}}
}

func lineGeometry(path []geo.Coordinate) Geometry {
	coords := make([][]float64, 0, len(path))
	for _, c := range path {
		coords = append(coords, []float64{c.Lng, c.Lat})
	}
	return Geometry{Type: "LineString", Coordinates: coords}
}
