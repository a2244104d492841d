package enrollmentController

import (
	"time"

	"lms/middleware"
	"lms/models"
	"lms/store"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// Controller serves enrollments, completion events and progress reads.
type Controller struct {
	Enrollments *store.EnrollmentStore
}

func New(enrollments *store.EnrollmentStore) *Controller {
	return &Controller{Enrollments: enrollments}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, ok := utils.ParseIDParam(c, param)
	if !ok {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id!")
	}
	return id, nil
}

// Create enrolls a student. Students enroll themselves; admins may enroll
// any user by passing user_id.
func (ctl *Controller) Create(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	reqData := c.Locals("validatedEnrollment").(*enrollmentValidator.CreateEnrollmentRequest)

	userID := caller.ID
	if reqData.UserID != 0 && reqData.UserID != caller.ID {
		if caller.Role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		userID = reqData.UserID
	}

	enrollment, err := ctl.Enrollments.Create(userID, reqData.CourseID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully.", enrollment)
}

func (ctl *Controller) GetAll(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	enrollments, err := ctl.Enrollments.FindAll(limit, offset)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", enrollments)
}

func (ctl *Controller) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	enrollment, err := ctl.Enrollments.FindByID(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully.", fiber.Map{
		"enrollment": enrollment,
		"status":     enrollment.Status(),
	})
}

// Update re-derives progress from completion records. Progress is never
// taken from the request body.
func (ctl *Controller) Update(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	enrollment, err := ctl.Enrollments.FindByID(id)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleAdmin && enrollment.UserID != caller.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	refreshed, err := ctl.Enrollments.Recompute(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment updated successfully.", refreshed)
}

func (ctl *Controller) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Enrollments.Delete(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment deleted successfully.", nil)
}

// CompleteLesson records a lesson completion for the user in the path.
// Students may only complete their own lessons.
func (ctl *Controller) CompleteLesson(c *fiber.Ctx) error {
	userID, err := ctl.completionUser(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedCompletion").(*enrollmentValidator.CompleteLessonRequest)

	if err := ctl.Enrollments.MarkLessonCompleted(userID, reqData.LessonID); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed.", nil)
}

// CompleteQuiz records a quiz score, overwriting any earlier attempt.
func (ctl *Controller) CompleteQuiz(c *fiber.Ctx) error {
	userID, err := ctl.completionUser(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedCompletion").(*enrollmentValidator.CompleteQuizRequest)

	if err := ctl.Enrollments.MarkQuizCompleted(userID, reqData.QuizID, *reqData.Score); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz marked as completed.", nil)
}

// CompleteAssignment records an assignment score, overwriting on repeat.
func (ctl *Controller) CompleteAssignment(c *fiber.Ctx) error {
	userID, err := ctl.completionUser(c)
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedCompletion").(*enrollmentValidator.CompleteAssignmentRequest)

	if err := ctl.Enrollments.MarkAssignmentCompleted(userID, reqData.AssignmentID, *reqData.Score); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment marked as completed.", nil)
}

// completionUser resolves the path user for a completion write. Students
// only ever record completions for themselves.
func (ctl *Controller) completionUser(c *fiber.Ctx) (uint, error) {
	caller := middleware.CurrentUser(c)
	userID, err := parseID(c, "userId")
	if err != nil {
		return 0, err
	}
	if userID != caller.ID {
		return 0, fiber.NewError(fiber.StatusForbidden, "You do not have permission to access this resource!")
	}
	return userID, nil
}

// Progress returns the per-course completion picture for a user.
func (ctl *Controller) Progress(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	courseID, err := parseID(c, "courseId")
	if err != nil {
		return err
	}

	progress, err := ctl.Enrollments.CourseProgress(userID, courseID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", progress)
}

// UserEnrollments lists a user's enrollments with course details.
func (ctl *Controller) UserEnrollments(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	enrollments, err := ctl.Enrollments.FindByUser(userID)
	if err != nil {
		return err
	}

	list := make([]fiber.Map, 0, len(enrollments))
	for i := range enrollments {
		list = append(list, fiber.Map{
			"enrollment": enrollments[i],
			"status":     enrollments[i].Status(),
		})
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", list)
}

// Stats returns enrollment totals and completion counts, admin only.
func (ctl *Controller) Stats(c *fiber.Ctx) error {
	total, err := ctl.Enrollments.CountTotal()
	if err != nil {
		return err
	}
	completed, err := ctl.Enrollments.CountCompleted()
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment stats fetched successfully.", fiber.Map{
		"total":     total,
		"completed": completed,
	})
}

// Trends returns daily enrollment counts. Defaults to the current month.
func (ctl *Controller) Trends(c *fiber.Ctx) error {
	start := now.BeginningOfMonth()
	end := time.Now()

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid from date!", nil)
		}
		start = parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid to date!", nil)
		}
		end = parsed.Add(24*time.Hour - time.Second)
	}

	points, err := ctl.Enrollments.Trends(start, end)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment trends fetched successfully.", points)
}
