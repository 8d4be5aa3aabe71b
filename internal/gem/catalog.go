package gem

import (
	"fmt"
	"strings"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
)

// capeTownGems is the built-in catalog. Loaded once at startup, never
// mutated afterwards.
var capeTownGems = []Gem{
	{
		ID:          "1",
		Name:        "Lion's Head Hike",
		Category:    CategoryHiking,
		Description: "Popular sunrise/sunset hike with breathtaking 360° views of Cape Town, Table Mountain, and the Atlantic Ocean.",
		Lat:         -33.9249,
		Lng:         18.4241,
	},
	{
		ID:          "2",
		Name:        "Bo-Kaap Neighborhood",
		Category:    CategoryCulture,
		Description: "Historic colorful neighborhood with cobblestone streets, Cape Malay culture, and stunning architecture.",
		Lat:         -33.9186,
		Lng:         18.4119,
	},
	{
		ID:          "3",
		Name:        "Kalk Bay Fishing Village",
		Category:    CategoryFood,
		Description: "Charming seaside village with the best fresh seafood, antique shops, and harbor seals.",
		Lat:         -34.1286,
		Lng:         18.4456,
	},
	{
		ID:          "4",
		Name:        "Sandy Bay Secret Beach",
		Category:    CategoryNature,
		Description: "Hidden beach away from crowds, perfect for sunset walks and peaceful moments by the ocean.",
		Lat:         -33.9597,
		Lng:         18.3756,
	},
	{
		ID:          "5",
		Name:        "The Crypt Jazz Restaurant",
		Category:    CategoryNightlife,
		Description: "Underground jazz venue in a historic church crypt with live music and atmospheric dining.",
		Lat:         -33.9249,
		Lng:         18.4241,
	},
	{
		ID:          "6",
		Name:        "Chapman's Peak Drive",
		Category:    CategoryNature,
		Description: "One of the world's most spectacular coastal drives with dramatic cliff-side views.",
		Lat:         -34.0582,
		Lng:         18.3491,
	},
	{
		ID:          "7",
		Name:        "Castle of Good Hope",
		Category:    CategoryHistory,
		Description: "Star-shaped fortress built in 1666, the oldest surviving colonial building in South Africa.",
		Lat:         -33.9249,
		Lng:         18.4291,
	},
	{
		ID:          "8",
		Name:        "Camps Bay Beach",
		Category:    CategoryNature,
		Description: "Pristine white sand beach backed by the Twelve Apostles mountain range.",
		Lat:         -33.9508,
		Lng:         18.3773,
	},
	{
		ID:          "9",
		Name:        "V&A Waterfront Markets",
		Category:    CategoryFood,
		Description: "Vibrant markets with local crafts, street food, and live entertainment by the harbor.",
		Lat:         -33.9022,
		Lng:         18.4186,
	},
	{
		ID:          "10",
		Name:        "Table Mountain Cable Car",
		Category:    CategoryHiking,
		Description: "Iconic flat-topped mountain offering panoramic views and unique fynbos vegetation.",
		Lat:         -33.9628,
		Lng:         18.4099,
	},
}

// Catalog is the read-only gem reference data.
type Catalog struct {
	gems []Gem
	byID map[string]Gem
}

// NewCatalog validates and indexes the given gems: IDs must be unique and
// categories members of the fixed set.
func NewCatalog(gems []Gem) (*Catalog, error) {
	byID := make(map[string]Gem, len(gems))
	for _, g := range gems {
		if g.ID == "" {
			return nil, fmt.Errorf("gem %q has no id", g.Name)
		}
		if _, dup := byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate gem id %q", g.ID)
		}
		if !g.Category.Valid() {
			return nil, fmt.Errorf("gem %q has unknown category %q", g.ID, g.Category)
		}
		byID[g.ID] = g
	}
	return &Catalog{gems: gems, byID: byID}, nil
}

// DefaultCatalog returns the built-in Cape Town catalog. The data is static
// and known-good, so a construction failure is a programming error.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(capeTownGems)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every gem in catalog order.
func (c *Catalog) All() []Gem {
	out := make([]Gem, len(c.gems))
	copy(out, c.gems)
	return out
}

func (c *Catalog) ByID(id string) (Gem, bool) {
	g, ok := c.byID[id]
	return g, ok
}

func (c *Catalog) Len() int { return len(c.gems) }

// FilterByCategory returns gems in any of the given categories; an empty
// filter means everything.
func (c *Catalog) FilterByCategory(categories []Category) []Gem {
	if len(categories) == 0 {
		return c.All()
	}
	want := make(map[Category]struct{}, len(categories))
	for _, cat := range categories {
		want[cat] = struct{}{}
	}
	var out []Gem
	for _, g := range c.gems {
		if _, ok := want[g.Category]; ok {
			out = append(out, g)
		}
	}
	return out
}

// Nearest returns up to limit gems sorted by distance from origin.
// limit <= 0 means no limit.
func (c *Catalog) Nearest(origin geo.Coordinate, limit int) []Gem {
	sorted := geo.SortByDistance(origin, c.gems)
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// Search matches query against gem names and descriptions,
// case-insensitively. When origin is non-nil the matches come back sorted by
// distance, nearest first, mirroring the search bar behavior.
func (c *Catalog) Search(query string, origin *geo.Coordinate) []Gem {
	q := strings.ToLower(strings.TrimSpace(query))
	var matches []Gem
	for _, g := range c.gems {
		if q == "" ||
			strings.Contains(strings.ToLower(g.Name), q) ||
			strings.Contains(strings.ToLower(g.Description), q) {
			matches = append(matches, g)
		}
	}
	if origin != nil {
		matches = geo.SortByDistance(*origin, matches)
	}
	return matches
}
