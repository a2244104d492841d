package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ParseIDParam reads a positive integer route parameter. The second
// return is false when the value is missing or malformed.
func ParseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
