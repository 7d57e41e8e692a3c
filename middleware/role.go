package middleware

import (
	"wastetrack/models"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards surfaces only the admin role may touch: user
// management, deletes, payment recording.
func RequireAdmin(ctx *fiber.Ctx) error {
	role, ok := ctx.Locals("role").(string)
	if !ok || role != models.RoleAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: You do not have permission",
		})
	}
	return ctx.Next()
}

// IsAdmin reports whether the authenticated request carries the admin role.
// Staff listings get rate and amount fields stripped based on this.
func IsAdmin(ctx *fiber.Ctx) bool {
	role, ok := ctx.Locals("role").(string)
	return ok && role == models.RoleAdmin
}
