package gem

import "github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

// Category classifies a gem. The set is fixed; the catalog rejects anything
// outside it.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryHiking    Category = "hiking"
	CategoryCulture   Category = "culture"
	CategoryNature    Category = "nature"
	CategoryNightlife Category = "nightlife"
	CategoryHistory   Category = "history"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryHiking,
	CategoryCulture,
	CategoryNature,
	CategoryNightlife,
	CategoryHistory,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryColors and CategoryIcons style map markers per category.
var CategoryColors = map[Category]string{
	CategoryFood:      "#FF6B6B",
	CategoryHiking:    "#4ECDC4",
	CategoryCulture:   "#45B7D1",
	CategoryNature:    "#96CEB4",
	CategoryNightlife: "#FECA57",
	CategoryHistory:   "#A55EEA",
}

var CategoryIcons = map[Category]string{
	CategoryFood:      "🍽️",
	CategoryHiking:    "🥾",
	CategoryCulture:   "🎨",
	CategoryNature:    "🌿",
	CategoryNightlife: "🌙",
	CategoryHistory:   "🏛️",
}

// Gem is an immutable point of interest from the catalog.
type Gem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Image       string   `json:"image,omitempty"`
}

func (g Gem) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: g.Lat, Lng: g.Lng}
}
