package enrollmentRoutes

import (
	controllers "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes wires enrollments, completion events and progress.
func SetupEnrollmentRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	students := middleware.RequireRoles(models.RoleAdmin, models.RoleStudent)
	studentOnly := middleware.RequireRoles(models.RoleStudent)

	group := app.Group("/api/enrollments", auth)
	group.Get("/", admin, ctl.GetAll)
	group.Get("/stats", admin, ctl.Stats)
	group.Get("/trends", admin, ctl.Trends)
	group.Post("/", students, validators.Create(), ctl.Create)
	group.Post("/:userId/lessons/completed", studentOnly, validators.CompleteLesson(), ctl.CompleteLesson)
	group.Post("/:userId/quizzes/completed", studentOnly, validators.CompleteQuiz(), ctl.CompleteQuiz)
	group.Post("/:userId/assignments/completed", studentOnly, validators.CompleteAssignment(), ctl.CompleteAssignment)
	group.Get("/:userId/courses/:courseId/progress", ctl.Progress)
	group.Get("/:id", ctl.Get)
	group.Put("/:id", students, ctl.Update)
	group.Delete("/:id", admin, ctl.Delete)

	app.Get("/api/users/:userId/enrollments", auth, ctl.UserEnrollments)
}
