package contentValidator

import (
	"time"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateModuleRequest struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	Position    int    `json:"position" validate:"gte=0"`
}

type UpdateModuleRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
}

type CreateLessonRequest struct {
	ModuleID    uint   `json:"module_id" form:"module_id" validate:"required"`
	Title       string `json:"title" form:"title" validate:"required,min=2,max=200"`
	ContentType string `json:"content_type" form:"content_type" validate:"required,oneof=video quiz text assignment"`
	ContentURL  string `json:"content_url" form:"content_url"`
	Duration    int    `json:"duration" form:"duration" validate:"gte=0"`
	Position    int    `json:"position" form:"position" validate:"gte=0"`
	IsFree      bool   `json:"is_free" form:"is_free"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=200"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=video quiz text assignment"`
	ContentURL  *string `json:"content_url"`
	Duration    *int    `json:"duration" validate:"omitempty,gte=0"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
	IsFree      *bool   `json:"is_free"`
}

type CreateQuizRequest struct {
	LessonID      uint     `json:"lesson_id" validate:"required"`
	Question      string   `json:"question" validate:"required,min=3"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	MaxScore      float64  `json:"max_score" validate:"omitempty,gt=0"`
}

type UpdateQuizRequest struct {
	Question      *string  `json:"question" validate:"omitempty,min=3"`
	Options       []string `json:"options" validate:"omitempty,min=2,dive,required"`
	CorrectAnswer *string  `json:"correct_answer"`
	MaxScore      *float64 `json:"max_score" validate:"omitempty,gt=0"`
}

type CreateAssignmentRequest struct {
	LessonID    uint      `json:"lesson_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=2,max=200"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	MaxScore    float64   `json:"max_score" validate:"omitempty,gt=0"`
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=2,max=200"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	MaxScore    *float64   `json:"max_score" validate:"omitempty,gt=0"`
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

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CreateModuleRequest), "validatedModule") }
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(UpdateModuleRequest), "validatedModule") }
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CreateLessonRequest), "validatedLesson") }
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(UpdateLessonRequest), "validatedLesson") }
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CreateQuizRequest), "validatedQuiz") }
}

func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(UpdateQuizRequest), "validatedQuiz") }
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(CreateAssignmentRequest), "validatedAssignment") }
}

func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error { return run(c, new(UpdateAssignmentRequest), "validatedAssignment") }
}
