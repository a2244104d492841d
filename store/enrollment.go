package store

import (
	"errors"
	"math"
	"time"

	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollmentStore owns enrollments, completion records and progress math.
type EnrollmentStore struct {
	DB *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{DB: db}
}

// Create enrolls a user in a course. The (user, course) pair is unique;
// re-enrolling maps to ErrConflict.
func (s *EnrollmentStore) Create(userID, courseID uint) (*models.Enrollment, error) {
	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.DB.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrForeignKey
		}
		return nil, err
	}
	return &enrollment, nil
}

func (s *EnrollmentStore) FindByID(id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.DB.Preload("Course").First(&enrollment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (s *EnrollmentStore) FindByUserCourse(userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (s *EnrollmentStore) FindAll(limit, offset int) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.DB.Preload("Course").Preload("User").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&enrollments).Error
	return enrollments, err
}

// FindByUser returns a user's enrollments with course details, newest first.
func (s *EnrollmentStore) FindByUser(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.DB.Preload("Course").Preload("Course.Instructor").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (s *EnrollmentStore) Delete(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkLessonCompleted records a lesson completion. Repeated calls refresh
// the timestamp on the single existing row.
func (s *EnrollmentStore) MarkLessonCompleted(userID, lessonID uint) error {
	lesson, err := s.lessonCourse(lessonID)
	if err != nil {
		return err
	}
	if _, err := s.FindByUserCourse(userID, lesson.courseID); err != nil {
		return err
	}

	record := models.CompletedLesson{UserID: userID, LessonID: lessonID, CompletedAt: time.Now()}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"completed_at": record.CompletedAt}),
	}).Create(&record).Error
	if err != nil {
		return err
	}
	return s.recomputeProgress(userID, lesson.courseID)
}

// MarkQuizCompleted records a quiz score. Repeated attempts overwrite the
// score and timestamp; only one row exists per (user, quiz).
func (s *EnrollmentStore) MarkQuizCompleted(userID, quizID uint, score float64) error {
	var quiz models.Quiz
	if err := s.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if score < 0 || score > quiz.MaxScore {
		return ErrValidation
	}
	lesson, err := s.lessonCourse(quiz.LessonID)
	if err != nil {
		return err
	}
	if _, err := s.FindByUserCourse(userID, lesson.courseID); err != nil {
		return err
	}

	record := models.CompletedQuiz{UserID: userID, QuizID: quizID, Score: score, CompletedAt: time.Now()}
	err = s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        score,
			"completed_at": record.CompletedAt,
		}),
	}).Create(&record).Error
	if err != nil {
		return err
	}
	return s.recomputeProgress(userID, lesson.courseID)
}

// MarkAssignmentCompleted records an assignment score, overwriting on repeat.
func (s *EnrollmentStore) MarkAssignmentCompleted(userID, assignmentID uint, score float64) error {
	var assignment models.Assignment
	if err := s.DB.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if score < 0 || score > assignment.MaxScore {
		return ErrValidation
	}
	lesson, err := s.lessonCourse(assignment.LessonID)
	if err != nil {
		return err
	}
	if _, err := s.FindByUserCourse(userID, lesson.courseID); err != nil {
		return err
	}

	record := models.CompletedAssignment{UserID: userID, AssignmentID: assignmentID, Score: score, CompletedAt: time.Now()}
	err = s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "assignment_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        score,
			"completed_at": record.CompletedAt,
		}),
	}).Create(&record).Error
	if err != nil {
		return err
	}
	return s.recomputeProgress(userID, lesson.courseID)
}

type lessonRef struct {
	lessonID uint
	courseID uint
}

func (s *EnrollmentStore) lessonCourse(lessonID uint) (*lessonRef, error) {
	var row struct {
		LessonID uint
		CourseID uint
	}
	err := s.DB.Model(&models.Lesson{}).
		Select("lessons.id AS lesson_id, modules.course_id AS course_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.CourseID == 0 {
		return nil, ErrNotFound
	}
	return &lessonRef{lessonID: row.LessonID, courseID: row.CourseID}, nil
}

// Progress is the full per-course picture: totals, completion counts and
// the derived percentage.
type Progress struct {
	CourseID             uint       `json:"course_id"`
	TotalLessons         int64      `json:"total_lessons"`
	TotalQuizzes         int64      `json:"total_quizzes"`
	TotalAssignments     int64      `json:"total_assignments"`
	CompletedLessons     int64      `json:"completed_lessons"`
	CompletedQuizzes     int64      `json:"completed_quizzes"`
	CompletedAssignments int64      `json:"completed_assignments"`
	Percentage           int        `json:"percentage"`
	Status               string     `json:"status"`
	CompletedAt          *time.Time `json:"completed_at"`
}

// CourseProgress computes a user's progress for a course they are enrolled
// in. Every lesson, quiz and assignment counts as one unit of equal weight.
func (s *EnrollmentStore) CourseProgress(userID, courseID uint) (*Progress, error) {
	enrollment, err := s.FindByUserCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	p := Progress{CourseID: courseID}
	if err := s.countItems(courseID, &p); err != nil {
		return nil, err
	}
	if err := s.countCompleted(userID, courseID, &p); err != nil {
		return nil, err
	}

	total := p.TotalLessons + p.TotalQuizzes + p.TotalAssignments
	done := p.CompletedLessons + p.CompletedQuizzes + p.CompletedAssignments
	if total > 0 {
		p.Percentage = int(math.Round(float64(done*100) / float64(total)))
	}
	p.Status = enrollment.Status()
	p.CompletedAt = enrollment.CompletedAt
	return &p, nil
}

func (s *EnrollmentStore) countItems(courseID uint, p *Progress) error {
	err := s.DB.Model(&models.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&p.TotalLessons).Error
	if err != nil {
		return err
	}
	err = s.DB.Model(&models.Quiz{}).
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&p.TotalQuizzes).Error
	if err != nil {
		return err
	}
	return s.DB.Model(&models.Assignment{}).
		Joins("JOIN lessons ON lessons.id = assignments.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&p.TotalAssignments).Error
}

func (s *EnrollmentStore) countCompleted(userID, courseID uint, p *Progress) error {
	err := s.DB.Model(&models.CompletedLesson{}).
		Joins("JOIN lessons ON lessons.id = completed_lessons.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("completed_lessons.user_id = ? AND modules.course_id = ?", userID, courseID).
		Count(&p.CompletedLessons).Error
	if err != nil {
		return err
	}
	err = s.DB.Model(&models.CompletedQuiz{}).
		Joins("JOIN quizzes ON quizzes.id = completed_quizzes.quiz_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("completed_quizzes.user_id = ? AND modules.course_id = ?", userID, courseID).
		Count(&p.CompletedQuizzes).Error
	if err != nil {
		return err
	}
	return s.DB.Model(&models.CompletedAssignment{}).
		Joins("JOIN assignments ON assignments.id = completed_assignments.assignment_id").
		Joins("JOIN lessons ON lessons.id = assignments.lesson_id").
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("completed_assignments.user_id = ? AND modules.course_id = ?", userID, courseID).
		Count(&p.CompletedAssignments).Error
}

// recomputeProgress re-derives the stored percentage from completion
// records after any completion write. Crossing 100 stamps completed_at.
func (s *EnrollmentStore) recomputeProgress(userID, courseID uint) error {
	progress, err := s.CourseProgress(userID, courseID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"progress": progress.Percentage}
	if progress.Percentage >= 100 {
		now := time.Now()
		updates["completed_at"] = &now
	} else {
		updates["completed_at"] = nil
	}
	return s.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(updates).Error
}

// Recompute re-derives the stored progress for an enrollment from its
// completion records and returns the fresh row. Progress is never taken
// from clients.
func (s *EnrollmentStore) Recompute(id uint) (*models.Enrollment, error) {
	enrollment, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeProgress(enrollment.UserID, enrollment.CourseID); err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// CountTotal counts all enrollments.
func (s *EnrollmentStore) CountTotal() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Enrollment{}).Count(&count).Error
	return count, err
}

// CountCompleted counts enrollments that reached full progress.
func (s *EnrollmentStore) CountCompleted() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Enrollment{}).Where("progress >= 100").Count(&count).Error
	return count, err
}

// TrendPoint is one day of enrollment volume. Day is a YYYY-MM-DD string
// so the same query scans cleanly on both postgres and sqlite.
type TrendPoint struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Trends returns daily enrollment counts for the given window, oldest first.
func (s *EnrollmentStore) Trends(start, end time.Time) ([]TrendPoint, error) {
	var points []TrendPoint
	err := s.DB.Model(&models.Enrollment{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&points).Error
	return points, err
}
