package visited

import (
	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, tracker *Tracker, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		ids := tracker.Snapshot()
		if ids == nil {
			ids = []string{}
		}
		return c.JSON(fiber.Map{"ids": ids, "count": len(ids)})
	})

	r.Get("/discoveries", func(c *fiber.Ctx) error {
		log := tracker.Discoveries()
		if log == nil {
			log = []Discovery{}
		}
		return c.JSON(log)
	})

	// Explicit "locate me" cross-check, outside of an active recording.
	r.Post("/observe", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil || body.Lat == nil || body.Lng == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}

		found, err := tracker.Observe(c.Context(), geo.Coordinate{Lat: *body.Lat, Lng: *body.Lng})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if found == nil {
			found = []gem.Gem{}
		}
		return c.JSON(fiber.Map{"discovered": found, "total_visited": tracker.Count()})
	})
}
