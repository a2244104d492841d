package contentRoutes

import (
	controllers "lms/controllers/content"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes wires modules, lessons, quizzes and assignments.
func SetupContentRoutes(app *fiber.App, ctl *controllers.Controller, auth fiber.Handler) {
	editors := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	admin := middleware.RequireRoles(models.RoleAdmin)

	modules := app.Group("/api/modules", auth)
	modules.Post("/", editors, validators.CreateModule(), ctl.CreateModule)
	modules.Get("/course/:course_id", ctl.GetModulesByCourse)
	modules.Get("/:id", ctl.GetModule)
	modules.Put("/:id", editors, validators.UpdateModule(), ctl.UpdateModule)
	modules.Delete("/:id", admin, ctl.DeleteModule)

	lessons := app.Group("/api/lessons", auth)
	lessons.Post("/", editors, validators.CreateLesson(), ctl.CreateLesson)
	lessons.Get("/module/:module_id", ctl.GetLessonsByModule)
	lessons.Get("/:id", ctl.GetLesson)
	lessons.Put("/:id", editors, validators.UpdateLesson(), ctl.UpdateLesson)
	lessons.Delete("/:id", admin, ctl.DeleteLesson)

	quizzes := app.Group("/api/quizzes", auth)
	quizzes.Post("/", editors, validators.CreateQuiz(), ctl.CreateQuiz)
	quizzes.Get("/lesson/:lesson_id", ctl.GetQuizzesByLesson)
	quizzes.Get("/:id", ctl.GetQuiz)
	quizzes.Put("/:id", editors, validators.UpdateQuiz(), ctl.UpdateQuiz)
	quizzes.Delete("/:id", admin, ctl.DeleteQuiz)

	assignments := app.Group("/api/assignments", auth)
	assignments.Post("/", editors, validators.CreateAssignment(), ctl.CreateAssignment)
	assignments.Get("/lesson/:lesson_id", ctl.GetAssignmentsByLesson)
	assignments.Get("/:id", ctl.GetAssignment)
	assignments.Put("/:id", editors, validators.UpdateAssignment(), ctl.UpdateAssignment)
	assignments.Delete("/:id", admin, ctl.DeleteAssignment)
}
