package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookmarket/internal/domain"
	applog "bookmarket/internal/log"
	"bookmarket/internal/services"
	"bookmarket/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if _, ok := validate.Email(body.Email); !ok {
		applog.Security(c, "auth.signup.fail", map[string]any{"reason": "bad_email_format"})
		return fail(c, fiber.StatusBadRequest, "Invalid email address", nil)
	}
	if !validate.Password(body.Password) {
		return fail(c, fiber.StatusBadRequest, "Password must be between 6 and 72 characters", nil)
	}

	token, user, err := h.Auth.Signup(body.Email, body.Password, body.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return fail(c, fiber.StatusBadRequest, "Passwords do not match", nil)
	case errors.Is(err, services.ErrEmailTaken):
		return fail(c, fiber.StatusBadRequest, "User already exists", nil)
	case err != nil:
		applog.Error(c, "auth.signup.error", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Server error", nil)
	}

	applog.Audit(c, "auth.signup.success", map[string]any{"email": user.Email})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	token, user, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": body.Email})
		return fail(c, fiber.StatusBadRequest, "Invalid credentials", nil)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": user.Email})
	return c.JSON(fiber.Map{"token": token, "user": user})
}

// Me returns the user resolved by RequireAuth.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, ok := c.Locals("user").(*domain.User)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Not authenticated", nil)
	}
	return c.JSON(fiber.Map{"success": true, "user": u})
}
