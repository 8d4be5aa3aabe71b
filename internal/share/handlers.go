package share

import (
	"github.com/CHIEF1K/cape-quest-paths/internal/route"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes attaches the sharing endpoints at the app root: share
// link and GPX export hang off saved routes, /shared resolves an incoming
// share link.
func RegisterRoutes(r fiber.Router, store route.Store, b *Builder) {
	r.Get("/routes/:id/share", func(c *fiber.Ctx) error {
		saved, ok, err := store.Route(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}

		link, err := b.ShareLink(saved)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"link":   link,
			"qr_url": b.QRCodeURL(link),
		})
	})

	r.Get("/routes/:id/gpx", func(c *fiber.Ctx) error {
		saved, ok, err := store.Route(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "route not found")
		}

		doc, err := GPX(saved)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/gpx+xml")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+saved.Name+`.gpx"`)
		return c.SendString(doc)
	})

	// A missing or undecodable route parameter is not an error, there is
	// simply nothing shared.
	r.Get("/shared", func(c *fiber.Ctx) error {
		payload := ParseSharedRoute(c.Query("route"))
		if payload == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(payload)
	})
}
