package enrollmentRoutes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	enrollmentController "lms/controllers/enrollment"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/routers/enrollmentRoutes"
	"lms/store"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	users  *store.UserStore
	tokens *middleware.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := store.NewUserStore(db, 4)
	enrollments := store.NewEnrollmentStore(db)
	tokens := middleware.NewTokenService("test-secret", 1)
	auth := middleware.Authenticate(tokens, users, nil)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(false)})
	enrollmentRoutes.SetupEnrollmentRoutes(app, enrollmentController.New(enrollments), auth)

	return &testEnv{app: app, db: db, users: users, tokens: tokens}
}

func (env *testEnv) user(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()

	user, err := env.users.Create(email, "Sup3r$ecret", "Test User", role)
	require.NoError(t, err)
	token, err := env.tokens.Issue(user.ID)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) seedCourse(t *testing.T) (*models.Course, *models.Lesson) {
	t.Helper()

	instructor, _ := env.user(t, "teach@example.com", models.RoleInstructor)
	course := models.Course{Title: "Intro", InstructorID: instructor.ID}
	require.NoError(t, env.db.Create(&course).Error)
	module := models.Module{CourseID: course.ID, Title: "Basics"}
	require.NoError(t, env.db.Create(&module).Error)
	lesson := models.Lesson{ModuleID: module.ID, Title: "Hello", ContentType: models.ContentVideo}
	require.NoError(t, env.db.Create(&lesson).Error)
	return &course, &lesson
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestEnrollAndProgressFlow(t *testing.T) {
	env := newTestEnv(t)
	course, lesson := env.seedCourse(t)
	student, token := env.user(t, "learn@example.com", models.RoleStudent)

	resp := doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Progress starts at zero with one lesson in the course.
	path := fmt.Sprintf("/api/enrollments/%d/courses/%d/progress", student.ID, course.ID)
	resp = doJSON(t, env.app, http.MethodGet, path, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost,
		fmt.Sprintf("/api/enrollments/%d/lessons/completed", student.ID),
		fiber.Map{"lesson_id": lesson.ID}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env2 struct {
		Data struct {
			Percentage int `json:"percentage"`
		} `json:"data"`
	}
	resp = doJSON(t, env.app, http.MethodGet, path, nil, token)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env2))
	assert.Equal(t, 100, env2.Data.Percentage)
}

func TestCompletionForOtherUserForbidden(t *testing.T) {
	env := newTestEnv(t)
	course, lesson := env.seedCourse(t)
	victim, victimToken := env.user(t, "victim@example.com", models.RoleStudent)
	_, attackerToken := env.user(t, "attacker@example.com", models.RoleStudent)

	resp := doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, victimToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost,
		fmt.Sprintf("/api/enrollments/%d/lessons/completed", victim.ID),
		fiber.Map{"lesson_id": lesson.ID}, attackerToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEnrollmentListAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, studentToken := env.user(t, "learn@example.com", models.RoleStudent)
	_, adminToken := env.user(t, "admin@example.com", models.RoleAdmin)

	resp := doJSON(t, env.app, http.MethodGet, "/api/enrollments/", nil, studentToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodGet, "/api/enrollments/", nil, adminToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateEnrollmentConflict(t *testing.T) {
	env := newTestEnv(t)
	course, _ := env.seedCourse(t)
	_, token := env.user(t, "learn@example.com", models.RoleStudent)

	resp := doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestQuizCompletionScore(t *testing.T) {
	env := newTestEnv(t)
	course, lesson := env.seedCourse(t)
	student, token := env.user(t, "learn@example.com", models.RoleStudent)

	quiz := models.Quiz{
		LessonID:      lesson.ID,
		Question:      "Pick one",
		Options:       datatypes.JSON(`["a","b"]`),
		CorrectAnswer: "a",
		MaxScore:      10,
	}
	require.NoError(t, env.db.Create(&quiz).Error)

	resp := doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Score above the quiz maximum is rejected.
	resp = doJSON(t, env.app, http.MethodPost,
		fmt.Sprintf("/api/enrollments/%d/quizzes/completed", student.ID),
		fiber.Map{"quiz_id": quiz.ID, "score": 11}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost,
		fmt.Sprintf("/api/enrollments/%d/quizzes/completed", student.ID),
		fiber.Map{"quiz_id": quiz.ID, "score": 8}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQuizCompletionRequiresScore(t *testing.T) {
	env := newTestEnv(t)
	course, lesson := env.seedCourse(t)
	student, token := env.user(t, "learn@example.com", models.RoleStudent)

	quiz := models.Quiz{
		LessonID:      lesson.ID,
		Question:      "Pick one",
		Options:       datatypes.JSON(`["a","b"]`),
		CorrectAnswer: "a",
		MaxScore:      100,
	}
	require.NoError(t, env.db.Create(&quiz).Error)

	resp := doJSON(t, env.app, http.MethodPost, "/api/enrollments/",
		fiber.Map{"course_id": course.ID}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	path := fmt.Sprintf("/api/enrollments/%d/quizzes/completed", student.ID)
	resp = doJSON(t, env.app, http.MethodPost, path,
		fiber.Map{"quiz_id": quiz.ID, "score": 95}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A body without a score is rejected and must not touch the stored attempt.
	resp = doJSON(t, env.app, http.MethodPost, path,
		fiber.Map{"quiz_id": quiz.ID}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var record models.CompletedQuiz
	require.NoError(t, env.db.Where("user_id = ? AND quiz_id = ?", student.ID, quiz.ID).
		First(&record).Error)
	assert.Equal(t, float64(95), record.Score)
}

func TestCompletionRoutesRejectAdmins(t *testing.T) {
	env := newTestEnv(t)
	_, lesson := env.seedCourse(t)
	admin, adminToken := env.user(t, "admin@example.com", models.RoleAdmin)

	resp := doJSON(t, env.app, http.MethodPost,
		fmt.Sprintf("/api/enrollments/%d/lessons/completed", admin.ID),
		fiber.Map{"lesson_id": lesson.ID}, adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEnrollmentInvalidID(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.user(t, "learn@example.com", models.RoleStudent)

	resp := doJSON(t, env.app, http.MethodGet, "/api/enrollments/abc", nil, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
