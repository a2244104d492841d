package searchRoutes

import (
	controllers "lms/controllers/search"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupSearchRoutes wires the search endpoints. Catalog search is public;
// user search is admin only.
func SetupSearchRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	group := app.Group("/api/search")
	group.Get("/", ctl.Global)
	group.Get("/courses", ctl.Courses)
	group.Get("/suggestions", ctl.Suggestions)
	group.Get("/users", auth, middleware.RequireRoles(models.RoleAdmin), ctl.Users)
}
