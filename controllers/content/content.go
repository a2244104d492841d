package contentController

import (
	"encoding/json"
	"errors"
	"log"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/store"
	"lms/utils"
	contentValidator "lms/validators/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Controller serves modules, lessons, quizzes and assignments.
type Controller struct {
	Cfg     *config.Config
	Content *store.ContentStore
}

func New(cfg *config.Config, content *store.ContentStore) *Controller {
	return &Controller{Cfg: cfg, Content: content}
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, ok := utils.ParseIDParam(c, param)
	if !ok {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id!")
	}
	return id, nil
}

func (ctl *Controller) CreateModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModule").(*contentValidator.CreateModuleRequest)

	module := models.Module{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Position:    reqData.Position,
	}
	if err := ctl.Content.CreateModule(&module); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", module)
}

func (ctl *Controller) GetModule(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	module, err := ctl.Content.FindModule(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully.", module)
}

func (ctl *Controller) GetModulesByCourse(c *fiber.Ctx) error {
	courseID, err := parseID(c, "course_id")
	if err != nil {
		return err
	}
	modules, err := ctl.Content.FindModulesByCourse(courseID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully.", modules)
}

func (ctl *Controller) UpdateModule(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedModule").(*contentValidator.UpdateModuleRequest)

	fields := map[string]interface{}{}
	if reqData.Title != nil {
		fields["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		fields["description"] = *reqData.Description
	}
	if reqData.Position != nil {
		fields["position"] = *reqData.Position
	}

	module, err := ctl.Content.UpdateModule(id, fields)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully.", module)
}

func (ctl *Controller) DeleteModule(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Content.DeleteModule(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully.", nil)
}

// CreateLesson creates a lesson. An optional multipart "content" file is
// stored and used as the content URL.
func (ctl *Controller) CreateLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLesson").(*contentValidator.CreateLessonRequest)

	lesson := models.Lesson{
		ModuleID:    reqData.ModuleID,
		Title:       reqData.Title,
		ContentType: reqData.ContentType,
		ContentURL:  reqData.ContentURL,
		Duration:    reqData.Duration,
		Position:    reqData.Position,
		IsFree:      reqData.IsFree,
	}

	if file, err := c.FormFile("content"); err == nil {
		url, err := utils.SaveUploadedFile(file, ctl.Cfg.UploadRoot, utils.UploadLessonContent, "lesson")
		if err != nil {
			log.Printf("Lesson content upload rejected: %v", err)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content upload failed!", nil)
		}
		lesson.ContentURL = url
	}

	if err := ctl.Content.CreateLesson(&lesson); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully.", lesson)
}

func (ctl *Controller) GetLesson(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	lesson, err := ctl.Content.FindLesson(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully.", lesson)
}

func (ctl *Controller) GetLessonsByModule(c *fiber.Ctx) error {
	moduleID, err := parseID(c, "module_id")
	if err != nil {
		return err
	}
	lessons, err := ctl.Content.FindLessonsByModule(moduleID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully.", lessons)
}

func (ctl *Controller) UpdateLesson(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedLesson").(*contentValidator.UpdateLessonRequest)

	fields := map[string]interface{}{}
	if reqData.Title != nil {
		fields["title"] = *reqData.Title
	}
	if reqData.ContentType != nil {
		fields["content_type"] = *reqData.ContentType
	}
	if reqData.ContentURL != nil {
		fields["content_url"] = *reqData.ContentURL
	}
	if reqData.Duration != nil {
		fields["duration"] = *reqData.Duration
	}
	if reqData.Position != nil {
		fields["position"] = *reqData.Position
	}
	if reqData.IsFree != nil {
		fields["is_free"] = *reqData.IsFree
	}

	lesson, err := ctl.Content.UpdateLesson(id, fields)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully.", lesson)
}

func (ctl *Controller) DeleteLesson(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Content.DeleteLesson(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully.", nil)
}

// CreateQuiz creates a quiz. The correct answer must be one of the
// options; the store enforces it.
func (ctl *Controller) CreateQuiz(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuiz").(*contentValidator.CreateQuizRequest)

	options, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz options!", nil)
	}
	quiz := models.Quiz{
		LessonID:      reqData.LessonID,
		Question:      reqData.Question,
		Options:       datatypes.JSON(options),
		CorrectAnswer: reqData.CorrectAnswer,
	}
	if reqData.MaxScore > 0 {
		quiz.MaxScore = reqData.MaxScore
	}
	if err := ctl.Content.CreateQuiz(&quiz); err != nil {
		if errors.Is(err, store.ErrValidation) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Correct answer must be one of the options!", nil)
		}
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully.", quiz)
}

func (ctl *Controller) GetQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	quiz, err := ctl.Content.FindQuiz(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", quiz)
}

func (ctl *Controller) GetQuizzesByLesson(c *fiber.Ctx) error {
	lessonID, err := parseID(c, "lesson_id")
	if err != nil {
		return err
	}
	quizzes, err := ctl.Content.FindQuizzesByLesson(lessonID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully.", quizzes)
}

func (ctl *Controller) UpdateQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedQuiz").(*contentValidator.UpdateQuizRequest)

	fields := map[string]interface{}{}
	if reqData.Question != nil {
		fields["question"] = *reqData.Question
	}
	if len(reqData.Options) > 0 {
		options, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz options!", nil)
		}
		fields["options"] = datatypes.JSON(options)
	}
	if reqData.CorrectAnswer != nil {
		fields["correct_answer"] = *reqData.CorrectAnswer
	}
	if reqData.MaxScore != nil {
		fields["max_score"] = *reqData.MaxScore
	}

	quiz, err := ctl.Content.UpdateQuiz(id, fields)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully.", quiz)
}

func (ctl *Controller) DeleteQuiz(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Content.DeleteQuiz(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully.", nil)
}

func (ctl *Controller) CreateAssignment(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAssignment").(*contentValidator.CreateAssignmentRequest)

	assignment := models.Assignment{
		LessonID:    reqData.LessonID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Deadline:    reqData.Deadline,
	}
	if reqData.MaxScore > 0 {
		assignment.MaxScore = reqData.MaxScore
	}
	if err := ctl.Content.CreateAssignment(&assignment); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully.", assignment)
}

func (ctl *Controller) GetAssignment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	assignment, err := ctl.Content.FindAssignment(id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment fetched successfully.", assignment)
}

func (ctl *Controller) GetAssignmentsByLesson(c *fiber.Ctx) error {
	lessonID, err := parseID(c, "lesson_id")
	if err != nil {
		return err
	}
	assignments, err := ctl.Content.FindAssignmentsByLesson(lessonID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully.", assignments)
}

func (ctl *Controller) UpdateAssignment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	reqData := c.Locals("validatedAssignment").(*contentValidator.UpdateAssignmentRequest)

	fields := map[string]interface{}{}
	if reqData.Title != nil {
		fields["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		fields["description"] = *reqData.Description
	}
	if reqData.Deadline != nil {
		fields["deadline"] = *reqData.Deadline
	}
	if reqData.MaxScore != nil {
		fields["max_score"] = *reqData.MaxScore
	}

	assignment, err := ctl.Content.UpdateAssignment(id, fields)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully.", assignment)
}

func (ctl *Controller) DeleteAssignment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Content.DeleteAssignment(id); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully.", nil)
}
