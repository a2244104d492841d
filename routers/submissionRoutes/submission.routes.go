package submissionRoutes

import (
	controllers "lms/controllers/submission"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/submission"

	"github.com/gofiber/fiber/v2"
)

// SetupSubmissionRoutes wires assignment submissions and grading.
func SetupSubmissionRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	graders := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	students := middleware.RequireRoles(models.RoleStudent)

	group := app.Group("/api/submissions", auth)
	group.Post("/", students, validators.Create(), ctl.Create)
	group.Post("/upload", students, ctl.Upload)
	group.Get("/assignment/:assignment_id", graders, ctl.GetByAssignment)
	group.Get("/user/:user_id", ctl.GetByUser)
	group.Get("/:id", ctl.Get)
	group.Put("/:id/grade", graders, validators.Grade(), ctl.GradeSubmission)
}
