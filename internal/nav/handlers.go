package nav

import (
	"strconv"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/gems/:id/directions", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}

		dirs, err := svc.WalkingDirections(c.Context(), geo.Coordinate{Lat: lat, Lng: lng}, c.Params("id"))
		if err != nil {
			if IsUnknownGem(err) {
				return fiber.NewError(fiber.StatusNotFound, "gem not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(dirs)
	})
}
