package submissionValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateSubmissionRequest struct {
	AssignmentID  uint   `json:"assignment_id" validate:"required"`
	SubmissionURL string `json:"submission_url" validate:"required,url"`
}

type GradeRequest struct {
	Grade    *float64 `json:"grade" validate:"required,gte=0"`
	Feedback string   `json:"feedback"`
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
	return func(c *fiber.Ctx) error { return run(c, new(CreateSubmissionRequest), "validatedSubmission") }
}

func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(GradeRequest), "validatedGrade") }
}
