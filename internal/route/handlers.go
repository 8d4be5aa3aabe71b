package route

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, store Store) {
	r.Get("/", func(c *fiber.Ctx) error {
		routes, err := store.Routes(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if routes == nil {
			routes = []Route{}
		}
		return c.JSON(routes)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		route, ok, err := store.Route(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}
		return c.JSON(route)
	})
}
