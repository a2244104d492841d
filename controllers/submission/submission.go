package submissionController

import (
	"log"
	"strconv"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/store"
	"lms/utils"
	submissionValidator "lms/validators/submission"

	"github.com/gofiber/fiber/v2"
)

// Controller serves assignment submissions and grading.
type Controller struct {
	Cfg         *config.Config
	Submissions *store.SubmissionStore
}

func New(cfg *config.Config, submissions *store.SubmissionStore) *Controller {
	return &Controller{Cfg: cfg, Submissions: submissions}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, ok := utils.ParseIDParam(c, param)
	if !ok {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id!")
	}
	return id, nil
}

// Create records a submission with an externally hosted URL.
func (ctl *Controller) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	reqData := c.Locals("validatedSubmission").(*submissionValidator.CreateSubmissionRequest)

	submission, err := ctl.Submissions.Create(user.ID, reqData.AssignmentID, reqData.SubmissionURL)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission created successfully.", submission)
}

// Upload stores a submission file and records the submission in one step.
// Expects a multipart "file" and an "assignment_id" form field.
func (ctl *Controller) Upload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	assignmentID, err := strconv.ParseUint(c.FormValue("assignment_id"), 10, 32)
	if err != nil || assignmentID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid assignment id!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}
	url, err := utils.SaveUploadedFile(file, ctl.Cfg.UploadRoot, utils.UploadSubmissions, "submission")
	if err != nil {
		log.Printf("Submission upload rejected: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File upload failed!", nil)
	}

	submission, err := ctl.Submissions.Create(user.ID, uint(assignmentID), url)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submission uploaded successfully.", submission)
}

func (ctl *Controller) Get(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	submission, err := ctl.Submissions.FindByID(id)
	if err != nil {
		return err
	}
	if caller.Role == models.RoleStudent && submission.UserID != caller.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully.", submission)
}

func (ctl *Controller) GetByAssignment(c *fiber.Ctx) error {
	assignmentID, err := parseID(c, "assignment_id")
	if err != nil {
		return err
	}
	submissions, err := ctl.Submissions.FindByAssignment(assignmentID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully.", submissions)
}

// GetByUser lists a user's submissions. Students may only list their own.
func (ctl *Controller) GetByUser(c *fiber.Ctx) error {
	caller := middleware.CurrentUser(c)
	userID, err := parseID(c, "user_id")
	if err != nil {
		return err
	}
	if caller.Role == models.RoleStudent && userID != caller.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	submissions, err := ctl.Submissions.FindByUser(userID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully.", submissions)
}

// GradeSubmission records a grade and optional feedback.
func (ctl *Controller) GradeSubmission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedGrade").(*submissionValidator.GradeRequest)

	submission, err := ctl.Submissions.Grade(id, *reqData.Grade, reqData.Feedback)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully.", submission)
}
