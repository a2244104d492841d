package middleware

import (
	"errors"
	"log"
	"runtime/debug"

	"lms/store"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandler builds the app-level fiber error handler. Store sentinels
// and database constraint errors translate to HTTP statuses; unexpected
// errors become a 500 with the stack trace in the payload outside
// production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, store.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			code = fiber.StatusNotFound
			message = "Resource not found"
		case errors.Is(err, store.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
			code = fiber.StatusConflict
			message = "Resource already exists"
		case errors.Is(err, store.ErrForeignKey), errors.Is(err, gorm.ErrForeignKeyViolated):
			code = fiber.StatusBadRequest
			message = "Referenced resource does not exist"
		case errors.Is(err, store.ErrValidation):
			code = fiber.StatusBadRequest
			message = "Invalid input"
		}

		if code == fiber.StatusInternalServerError {
			log.Printf("unhandled error: %v", err)
			if !production {
				return JsonResponse(c, code, false, message, fiber.Map{
					"error": err.Error(),
					"stack": string(debug.Stack()),
				})
			}
		}
		return JsonResponse(c, code, false, message, nil)
	}
}
