package courseValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateCourseRequest struct {
	Title       string  `json:"title" form:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" form:"description"`
	CategoryID  *uint   `json:"category_id" form:"category_id"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description"`
	CategoryID  *uint    `json:"category_id"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsPublished *bool    `json:"is_published"`
	IsApproved  *bool    `json:"is_approved"`
}

// CreateCategory validates the category payload, create and update alike.
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// CreateCourse validates the course creation payload. Accepts multipart
// form fields so a thumbnail can ride along.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the partial course update payload.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}
