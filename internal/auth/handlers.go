package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/pair", func(c *fiber.Ctx) error {
		var req struct {
			AccessCode string `json:"access_code"`
			DeviceName string `json:"device_name"`
		}
		if err := c.BodyParser(&req); err != nil || req.AccessCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "access_code required")
		}

		resp, err := svc.Pair(req.AccessCode, req.DeviceName)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.JSON(resp)
	})

	r.Get("/verify", func(c *fiber.Ctx) error {
		token := parseBearer(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		deviceID, err := svc.ValidateToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return c.JSON(fiber.Map{"device_id": deviceID})
	})
}

func parseBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
