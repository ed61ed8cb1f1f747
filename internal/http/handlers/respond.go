package handlers

import "github.com/gofiber/fiber/v2"

// fail writes the common error shape: success flag plus a
// human-readable message. Extra key/value pairs ride along for
// taxonomy-specific detail (missingFields, details, ...).
func fail(c *fiber.Ctx, status int, msg string, extra fiber.Map) error {
	body := fiber.Map{"success": false, "error": msg}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}
