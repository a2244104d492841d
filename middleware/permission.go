package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware admitting only users whose role is in
// the allowed set. An empty set admits any authenticated user. Runs after
// Authenticate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Access token is required", nil)
		}
		if len(roles) == 0 {
			return c.Next()
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
