package gem

import (
	"strconv"
	"strings"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, catalog *Catalog) {
	r.Get("/", func(c *fiber.Ctx) error {
		categories, err := parseCategories(c.Query("category"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		gems := catalog.FilterByCategory(categories)
		if gems == nil {
			gems = []Gem{}
		}
		return c.JSON(gems)
	})

	r.Get("/categories", func(c *fiber.Ctx) error {
		out := make([]fiber.Map, 0, len(Categories))
		for _, cat := range Categories {
			out = append(out, fiber.Map{
				"category": cat,
				"color":    CategoryColors[cat],
				"icon":     CategoryIcons[cat],
			})
		}
		return c.JSON(out)
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		origin, err := optionalOrigin(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		matches := catalog.Search(c.Query("q"), origin)
		if matches == nil {
			matches = []Gem{}
		}
		return c.JSON(matches)
	})

	r.Get("/nearest", func(c *fiber.Ctx) error {
		origin, err := optionalOrigin(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if origin == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		limit, _ := strconv.Atoi(c.Query("limit"))
		return c.JSON(catalog.Nearest(*origin, limit))
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		g, ok := catalog.ByID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "gem not found")
		}
		return c.JSON(g)
	})
}

func parseCategories(raw string) ([]Category, error) {
	if raw == "" {
		return nil, nil
	}
	var out []Category
	for _, part := range strings.Split(raw, ",") {
		cat := Category(strings.TrimSpace(part))
		if !cat.Valid() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "unknown category "+string(cat))
		}
		out = append(out, cat)
	}
	return out, nil
}

func optionalOrigin(c *fiber.Ctx) (*geo.Coordinate, error) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid lng")
	}
	return &geo.Coordinate{Lat: lat, Lng: lng}, nil
}
