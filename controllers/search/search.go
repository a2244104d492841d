package searchController

import (
	"errors"

	"lms/middleware"
	"lms/store"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the catalog search endpoints.
type Controller struct {
	Search *store.SearchStore
}

func New(search *store.SearchStore) *Controller {
	return &Controller{Search: search}
}

func termError(c *fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrValidation) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Search term must be at least 2 characters!", nil)
	}
	return err
}

// Global searches courses, users and categories at once.
func (ctl *Controller) Global(c *fiber.Ctx) error {
	term := c.Query("q")
	includeLessons := c.QueryBool("lessons", false)
	limit := c.QueryInt("limit", 10)

	results, err := ctl.Search.Global(term, includeLessons, limit)
	if err != nil {
		return termError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Search results fetched successfully.", results)
}

// Courses runs the filtered course search.
func (ctl *Controller) Courses(c *fiber.Ctx) error {
	filter := store.CourseFilter{
		Term:   c.Query("q"),
		Sort:   c.Query("sort"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.QueryInt("category_id", 0); v > 0 {
		id := uint(v)
		filter.CategoryID = &id
	}
	if v := c.QueryInt("instructor_id", 0); v > 0 {
		id := uint(v)
		filter.InstructorID = &id
	}
	if v := c.QueryFloat("min_price", -1); v >= 0 {
		filter.MinPrice = &v
	}
	if v := c.QueryFloat("max_price", -1); v >= 0 {
		filter.MaxPrice = &v
	}

	courses, err := ctl.Search.Courses(filter)
	if err != nil {
		return termError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// Suggestions returns autocomplete entries for a prefix.
func (ctl *Controller) Suggestions(c *fiber.Ctx) error {
	suggestions, err := ctl.Search.Suggestions(c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return termError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Suggestions fetched successfully.", suggestions)
}

// Users searches users by name or email, admin only.
func (ctl *Controller) Users(c *fiber.Ctx) error {
	users, err := ctl.Search.Users(c.Query("q"), c.QueryInt("limit", 20))
	if err != nil {
		return termError(c, err)
	}
	list := make([]interface{}, 0, len(users))
	for i := range users {
		list = append(list, users[i].Public())
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", list)
}
