package mapview

import (
	"strings"

	"github.com/CHIEF1K/cape-quest-paths/internal/gem"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, view *View) {
	r.Get("/gems", func(c *fiber.Ctx) error {
		var categories []gem.Category
		if raw := c.Query("categories"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				cat := gem.Category(strings.TrimSpace(part))
				if !cat.Valid() {
					return fiber.NewError(fiber.StatusBadRequest, "unknown category "+string(cat))
				}
				categories = append(categories, cat)
			}
		}
		return c.JSON(view.GemMarkers(categories))
	})

	r.Get("/routes", func(c *fiber.Ctx) error {
		fc, err := view.RouteLines(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fc)
	})

	r.Get("/live", func(c *fiber.Ctx) error {
		return c.JSON(view.LiveOverlay())
	})
}
