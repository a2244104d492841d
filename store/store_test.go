package store

import (
	"testing"

	"lms/database"
	"lms/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	users := NewUserStore(db, 4)
	user, err := users.Create(email, "Sup3r$ecret", "Test User", role)
	require.NoError(t, err)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, instructorID uint) *models.Course {
	t.Helper()

	course := models.Course{Title: "Intro to Go", InstructorID: instructorID, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	return &course
}
