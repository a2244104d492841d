package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses derived from progress; never set directly by clients.
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment links a student to a course with aggregate progress.
// At most one row exists per (user, course) pair.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	CompletedAt *time.Time `json:"completed_at"`
	User        User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course      Course     `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Status derives the enrollment state from the stored progress.
func (e *Enrollment) Status() string {
	switch {
	case e.Progress >= 100:
		return EnrollmentCompleted
	case e.Progress > 0:
		return EnrollmentInProgress
	default:
		return EnrollmentEnrolled
	}
}

// CompletedLesson marks a (user, lesson) pair completed. Repeats upsert.
type CompletedLesson struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_completed_lessons_user_lesson;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"uniqueIndex:idx_completed_lessons_user_lesson;not null"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletedQuiz records a quiz completion with the latest score.
type CompletedQuiz struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_completed_quizzes_user_quiz;not null"`
	QuizID      uint      `json:"quiz_id" gorm:"uniqueIndex:idx_completed_quizzes_user_quiz;not null"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletedAssignment records an assignment completion with the latest score.
type CompletedAssignment struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex:idx_completed_assignments_user_assignment;not null"`
	AssignmentID uint      `json:"assignment_id" gorm:"uniqueIndex:idx_completed_assignments_user_assignment;not null"`
	Score        float64   `json:"score"`
	CompletedAt  time.Time `json:"completed_at"`
}
