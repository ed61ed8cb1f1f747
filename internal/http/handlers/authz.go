package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "bookmarket/internal/log"
	"bookmarket/internal/services"
)

// RequireAuth verifies a Bearer token and attaches the user to the
// request context. Listing routes stay open; only account routes sit
// behind this.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return fail(c, fiber.StatusUnauthorized, "No bearer token", nil)
		}
		u, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return fail(c, fiber.StatusUnauthorized, "Invalid token", nil)
		}
		c.Locals("user", u)
		return c.Next()
	}
}
