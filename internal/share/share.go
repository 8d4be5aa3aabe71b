package share

import (
	"encoding/json"
	"net/url"

	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
)

// Payload is the reduced route projection carried inside a share link.
type Payload struct {
	Path        []geo.Coordinate `json:"path"`
	Name        string           `json:"name"`
	DistanceKm  float64          `json:"distance"`
	DurationSec int64            `json:"duration"`
	VisitedGems []string         `json:"visitedGems"`
}

// Builder produces share links, QR image URLs and GPX documents for
// saved routes.
type Builder struct {
	baseURL    string
	qrEndpoint string
}

func NewBuilder(baseURL, qrEndpoint string) *Builder {
	return &Builder{baseURL: baseURL, qrEndpoint: qrEndpoint}
}

// ShareLink encodes the route as a url-encoded JSON query parameter on
// the app's own base URL.
func (b *Builder) ShareLink(r route.Route) (string, error) {
	payload := Payload{
		Path:        r.Path,
		Name:        r.Name,
		DistanceKm:  r.DistanceKm,
		DurationSec: r.DurationSec,
		VisitedGems: r.VisitedGems,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return b.baseURL + "?route=" + url.QueryEscape(string(raw)), nil
}

// QRCodeURL points an external QR renderer at the given text. No local
// QR generation.
func (b *Builder) QRCodeURL(text string) string {
	return b.qrEndpoint + "?size=200x200&data=" + url.QueryEscape(text)
}

// ParseSharedRoute is the inverse of ShareLink's encoding step. Malformed
// input yields nil, never an error; a broken share link just means there
// is no shared route.
func ParseSharedRoute(raw string) *Payload {
	if raw == "" {
		return nil
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}
	var payload Payload
	if err := json.Unmarshal([]byte(decoded), &payload); err != nil {
		return nil
	}
	if len(payload.Path) == 0 {
		return nil
	}
	return &payload
}
