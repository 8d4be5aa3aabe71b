package share

import (
	"encoding/xml"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/route"
)

const gpxCreator = "Cape Quest Paths"

type gpxDoc struct {
	XMLName  xml.Name    `xml:"gpx"`
	Version  string      `xml:"version,attr"`
	Creator  string      `xml:"creator,attr"`
	Xmlns    string      `xml:"xmlns,attr"`
	Metadata gpxMetadata `xml:"metadata"`
	Track    gpxTrack    `xml:"trk"`
}

type gpxMetadata struct {
	Name string `xml:"name"`
	Desc string `xml:"desc"`
	Time string `xml:"time"`
}

type gpxTrack struct {
	Name    string     `xml:"name"`
	Segment gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// GPX renders the route as a GPS Exchange document: one track, one
// segment, one point per path coordinate, in order.
func GPX(r route.Route) (string, error) {
	doc := gpxDoc{
		Version: "1.1",
		Creator: gpxCreator,
		Xmlns:   "http://www.topografix.com/GPX/1/1",
		Metadata: gpxMetadata{
			Name: r.Name,
			Desc: "Recorded with Cape Quest Paths",
			Time: r.CreatedAt.UTC().Format(time.RFC3339),
		},
		Track: gpxTrack{Name: r.Name},
	}
	for _, c := range r.Path {
		doc.Track.Segment.Points = append(doc.Track.Segment.Points, gpxPoint{Lat: c.Lat, Lon: c.Lng})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}
