package store

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSearchData(t *testing.T, db *gorm.DB) {
	t.Helper()

	catalog := NewCatalogStore(db)
	instructor := seedUser(t, db, "gopher.instructor@example.com", models.RoleInstructor)

	category, err := catalog.CreateCategory("Go Programming")
	require.NoError(t, err)

	courses := []models.Course{
		{Title: "Go for Beginners", Description: "start here", InstructorID: instructor.ID, CategoryID: &category.ID, Price: 10},
		{Title: "Advanced Go Patterns", Description: "concurrency and more", InstructorID: instructor.ID, CategoryID: &category.ID, Price: 50},
		{Title: "Cooking Basics", Description: "nothing about programming", InstructorID: instructor.ID, Price: 5},
	}
	for i := range courses {
		require.NoError(t, catalog.CreateCourse(&courses[i]))
	}
}

func TestGlobalSearch(t *testing.T) {
	db := newTestDB(t)
	seedSearchData(t, db)
	search := NewSearchStore(db)

	results, err := search.Global("go", false, 10)
	require.NoError(t, err)
	require.Len(t, results.Courses, 2)
	// Prefix matches rank first.
	assert.Equal(t, "Go for Beginners", results.Courses[0].Title)
	assert.Len(t, results.Categories, 1)
	assert.NotEmpty(t, results.Users)
	assert.Empty(t, results.Lessons)
}

func TestSearchTermTooShort(t *testing.T) {
	db := newTestDB(t)
	search := NewSearchStore(db)

	_, err := search.Global("g", false, 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = search.Suggestions(" a ", 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = search.Users("x", 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCourseSearchFilters(t *testing.T) {
	db := newTestDB(t)
	seedSearchData(t, db)
	search := NewSearchStore(db)

	min := 20.0
	courses, err := search.Courses(CourseFilter{Term: "go", MinPrice: &min})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Advanced Go Patterns", courses[0].Title)

	courses, err = search.Courses(CourseFilter{Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "Cooking Basics", courses[0].Title)
}

func TestSuggestions(t *testing.T) {
	db := newTestDB(t)
	seedSearchData(t, db)
	search := NewSearchStore(db)

	suggestions, err := search.Suggestions("go", 10)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	for _, s := range suggestions {
		assert.Contains(t, []string{"course", "category"}, s.Type)
	}
}

func TestUserSearch(t *testing.T) {
	db := newTestDB(t)
	seedSearchData(t, db)
	search := NewSearchStore(db)

	users, err := search.Users("gopher", 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "gopher.instructor@example.com", users[0].Email)
}
