package reportRoutes

import (
	controllers "lms/controllers/report"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// SetupReportRoutes wires the admin reporting endpoints.
func SetupReportRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	group := app.Group("/api/reports", auth, middleware.RequireRoles(models.RoleAdmin))
	group.Get("/users/activity", ctl.UserActivity)
	group.Get("/courses/popularity", ctl.CoursePopularity)
	group.Get("/system/usage", ctl.SystemUsage)
}
