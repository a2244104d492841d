package userValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student instructor admin"`
}

// Register validates the signup payload.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// Login validates the login payload.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// ChangePassword validates the password change payload.
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedPassword", reqData)
		return c.Next()
	}
}

// UpdateRole validates the role change payload.
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateRoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if errors := validators.Check(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}
