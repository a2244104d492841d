package enrollmentValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateEnrollmentRequest struct {
	UserID   uint `json:"user_id"`
	CourseID uint `json:"course_id" validate:"required"`
}

type CompleteLessonRequest struct {
	LessonID uint `json:"lesson_id" validate:"required"`
}

type CompleteQuizRequest struct {
	QuizID uint     `json:"quiz_id" validate:"required"`
	Score  *float64 `json:"score" validate:"required,gte=0"`
}

type CompleteAssignmentRequest struct {
	AssignmentID uint     `json:"assignment_id" validate:"required"`
	Score        *float64 `json:"score" validate:"required,gte=0"`
}

func run(c *fiber.Ctx, payload interface{}, key string) error {
	if err := c.BodyParser(payload); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := validators.Check(payload); errors != nil {
		return middleware.ValidationErrorResponse(c, errors)
	}
	c.Locals(key, payload)
	return c.Next()
}

func Create() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CreateEnrollmentRequest), "validatedEnrollment") }
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CompleteLessonRequest), "validatedCompletion") }
}

func CompleteQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CompleteQuizRequest), "validatedCompletion") }
}

func CompleteAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CompleteAssignmentRequest), "validatedCompletion") }
}
