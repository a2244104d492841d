package store

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogStore(db)

	category, err := catalog.CreateCategory("  Programming  ")
	require.NoError(t, err)
	assert.Equal(t, "Programming", category.Name)

	_, err = catalog.CreateCategory("Programming")
	assert.ErrorIs(t, err, ErrConflict)

	_, err = catalog.CreateCategory("   ")
	assert.ErrorIs(t, err, ErrValidation)

	renamed, err := catalog.UpdateCategory(category.ID, "Software")
	require.NoError(t, err)
	assert.Equal(t, "Software", renamed.Name)

	require.NoError(t, catalog.DeleteCategory(category.ID))
	_, err = catalog.FindCategory(category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryDeleteWithCourses(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogStore(db)
	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)

	category, err := catalog.CreateCategory("Databases")
	require.NoError(t, err)

	course := models.Course{Title: "SQL Basics", InstructorID: instructor.ID, CategoryID: &category.ID}
	require.NoError(t, catalog.CreateCourse(&course))

	assert.ErrorIs(t, catalog.DeleteCategory(category.ID), ErrForeignKey)

	require.NoError(t, catalog.DeleteCourse(course.ID))
	require.NoError(t, catalog.DeleteCategory(category.ID))
}

func TestCourseUpdate(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogStore(db)
	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	course := seedCourse(t, db, instructor.ID)

	_, err := catalog.UpdateCourse(course.ID, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := catalog.UpdateCourse(course.ID, map[string]interface{}{
		"title":        "Advanced Go",
		"price":        49.99,
		"is_published": true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", updated.Title)
	assert.Equal(t, 49.99, updated.Price)
	assert.True(t, updated.IsPublished)
}

func TestPopularCourses(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogStore(db)
	enrollments := NewEnrollmentStore(db)

	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	quiet := seedCourse(t, db, instructor.ID)
	popular := seedCourse(t, db, instructor.ID)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		student := seedUser(t, db, email, models.RoleStudent)
		_, err := enrollments.Create(student.ID, popular.ID)
		require.NoError(t, err)
	}
	one := seedUser(t, db, "d@example.com", models.RoleStudent)
	_, err := enrollments.Create(one.ID, quiet.ID)
	require.NoError(t, err)

	rows, err := catalog.PopularCourses(10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, popular.ID, rows[0].CourseID)
	assert.Equal(t, int64(3), rows[0].Enrollments)
}

func TestQuizCorrectAnswerValidation(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	course := seedCourse(t, db, instructor.ID)

	module := models.Module{CourseID: course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&module).Error)
	lesson := models.Lesson{ModuleID: module.ID, Title: "Quiz time", ContentType: models.ContentQuiz}
	require.NoError(t, content.CreateLesson(&lesson))

	quiz := models.Quiz{
		LessonID:      lesson.ID,
		Question:      "Pick one",
		Options:       datatypes.JSON(`["a","b"]`),
		CorrectAnswer: "c",
	}
	assert.ErrorIs(t, content.CreateQuiz(&quiz), ErrValidation)

	quiz.CorrectAnswer = "b"
	require.NoError(t, content.CreateQuiz(&quiz))

	single := models.Quiz{
		LessonID:      lesson.ID,
		Question:      "Only one option",
		Options:       datatypes.JSON(`["a"]`),
		CorrectAnswer: "a",
	}
	assert.ErrorIs(t, content.CreateQuiz(&single), ErrValidation)
}

func TestLessonContentType(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	course := seedCourse(t, db, instructor.ID)

	module := models.Module{CourseID: course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&module).Error)

	bad := models.Lesson{ModuleID: module.ID, Title: "Oops", ContentType: "hologram"}
	assert.ErrorIs(t, content.CreateLesson(&bad), ErrValidation)
}

func TestModuleOrdering(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	course := seedCourse(t, db, instructor.ID)

	for i, title := range []string{"Third", "First", "Second"} {
		module := models.Module{CourseID: course.ID, Title: title, Position: []int{3, 1, 2}[i]}
		require.NoError(t, content.CreateModule(&module))
	}

	modules, err := content.FindModulesByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "First", modules[0].Title)
	assert.Equal(t, "Second", modules[1].Title)
	assert.Equal(t, "Third", modules[2].Title)
}

func TestSubmissionGrading(t *testing.T) {
	db := newTestDB(t)
	content := NewContentStore(db)
	submissions := NewSubmissionStore(db)

	instructor := seedUser(t, db, "teach@example.com", models.RoleInstructor)
	student := seedUser(t, db, "learn@example.com", models.RoleStudent)
	course := seedCourse(t, db, instructor.ID)

	module := models.Module{CourseID: course.ID, Title: "Basics"}
	require.NoError(t, db.Create(&module).Error)
	lesson := models.Lesson{ModuleID: module.ID, Title: "Work", ContentType: models.ContentAssignment}
	require.NoError(t, content.CreateLesson(&lesson))
	assignment := models.Assignment{LessonID: lesson.ID, Title: "Essay", MaxScore: 100}
	require.NoError(t, content.CreateAssignment(&assignment))

	submission, err := submissions.Create(student.ID, assignment.ID, "https://example.com/essay.pdf")
	require.NoError(t, err)
	assert.Nil(t, submission.Grade)

	_, err = submissions.Grade(submission.ID, 150, "too generous")
	assert.ErrorIs(t, err, ErrValidation)

	graded, err := submissions.Grade(submission.ID, 88, "solid work")
	require.NoError(t, err)
	require.NotNil(t, graded.Grade)
	assert.Equal(t, float64(88), *graded.Grade)
	assert.Equal(t, "solid work", graded.Feedback)

	_, err = submissions.Create(student.ID, 9999, "https://example.com/lost.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}
