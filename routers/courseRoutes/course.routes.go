package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes wires categories and courses.
func SetupCourseRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	categories := app.Group("/api/categories", auth)
	categories.Get("/", ctl.GetCategories)
	categories.Get("/:id", ctl.GetCategory)
	categories.Post("/", middleware.RequireRoles(models.RoleAdmin), validators.CreateCategory(), ctl.CreateCategory)
	categories.Put("/:id", middleware.RequireRoles(models.RoleAdmin), validators.CreateCategory(), ctl.UpdateCategory)
	categories.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), ctl.DeleteCategory)

	courses := app.Group("/api/courses", auth)
	courses.Get("/", ctl.GetCourses)
	courses.Get("/category/:categoryId", middleware.RequireRoles(models.RoleAdmin), ctl.GetCoursesByCategory)
	courses.Get("/:id", ctl.GetCourse)
	courses.Post("/", middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor), validators.CreateCourse(), ctl.CreateCourse)
	courses.Put("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor), validators.UpdateCourse(), ctl.UpdateCourse)
	courses.Delete("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor), ctl.DeleteCourse)
}
