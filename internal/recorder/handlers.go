package recorder

import (
	"errors"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, rec *Recorder, src *PushSource, authMiddleware fiber.Handler) {
	r.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(rec.Status())
	})

	r.Post("/start", authMiddleware, func(c *fiber.Ctx) error {
		if err := rec.Start(c.Context()); err != nil {
			if errors.Is(err, ErrUnsupported) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "location tracking unavailable")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(rec.Status())
	})

	r.Post("/points", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil || body.Lat == nil || body.Lng == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		if src == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "location tracking unavailable")
		}

		sample := Sample{Coord: geo.Coordinate{Lat: *body.Lat, Lng: *body.Lng}, At: nowFn()}
		if err := src.Push(sample); err != nil {
			if errors.Is(err, ErrIdle) {
				return fiber.NewError(fiber.StatusConflict, "no active recording")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/stop", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		// A missing or empty body keeps the default date-stamped name.
		_ = c.BodyParser(&body)

		saved, ok, err := rec.Stop(c.Context(), body.Name)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return c.JSON(fiber.Map{"saved": false})
		}
		return c.JSON(fiber.Map{"saved": true, "route": saved})
	})
}
