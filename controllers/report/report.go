package reportController

import (
	"time"

	"lms/middleware"
	"lms/store"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// Controller serves the admin reporting endpoints.
type Controller struct {
	Users       *store.UserStore
	Catalog     *store.CatalogStore
	Enrollments *store.EnrollmentStore
}

func New(users *store.UserStore, catalog *store.CatalogStore, enrollments *store.EnrollmentStore) *Controller {
	return &Controller{Users: users, Catalog: catalog, Enrollments: enrollments}
}

// UserActivity reports per-user enrollment counts, optionally windowed on
// last login.
func (ctl *Controller) UserActivity(c *fiber.Ctx) error {
	var start, end *time.Time
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid from date!", nil)
		}
		start = &parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid to date!", nil)
		}
		endOfDay := parsed.Add(24*time.Hour - time.Second)
		end = &endOfDay
	}

	rows, err := ctl.Users.Activity(start, end)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User activity fetched successfully.", rows)
}

// CoursePopularity ranks courses by enrollment count.
func (ctl *Controller) CoursePopularity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	rows, err := ctl.Catalog.PopularCourses(limit)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course popularity fetched successfully.", rows)
}

// SystemUsage reports platform-wide totals. Active users are counted from
// the beginning of the current month.
func (ctl *Controller) SystemUsage(c *fiber.Ctx) error {
	totalUsers, err := ctl.Users.CountTotal()
	if err != nil {
		return err
	}
	activeUsers, err := ctl.Users.CountActiveSince(now.BeginningOfMonth())
	if err != nil {
		return err
	}
	totalCourses, err := ctl.Catalog.CountCourses()
	if err != nil {
		return err
	}
	totalEnrollments, err := ctl.Enrollments.CountTotal()
	if err != nil {
		return err
	}
	completedEnrollments, err := ctl.Enrollments.CountCompleted()
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "System usage fetched successfully.", fiber.Map{
		"total_users":           totalUsers,
		"active_users":          activeUsers,
		"total_courses":         totalCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
	})
}
