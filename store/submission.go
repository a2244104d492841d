package store

import (
	"errors"
	"time"

	"lms/models"

	"gorm.io/gorm"
)

// SubmissionStore owns assignment submissions and grading.
type SubmissionStore struct {
	DB *gorm.DB
}

func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{DB: db}
}

func (s *SubmissionStore) Create(userID, assignmentID uint, url string) (*models.Submission, error) {
	if _, err := s.assignment(assignmentID); err != nil {
		return nil, err
	}
	submission := models.Submission{
		AssignmentID:  assignmentID,
		UserID:        userID,
		SubmissionURL: url,
		SubmittedAt:   time.Now(),
	}
	if err := s.DB.Create(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrForeignKey
		}
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionStore) FindByID(id uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.DB.Preload("Assignment").First(&submission, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionStore) FindByAssignment(assignmentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.DB.Preload("User").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (s *SubmissionStore) FindByUser(userID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.DB.Preload("Assignment").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

// Grade records a grade and optional feedback. The grade must fall within
// the assignment's max score.
func (s *SubmissionStore) Grade(id uint, grade float64, feedback string) (*models.Submission, error) {
	submission, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignment(submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if grade < 0 || grade > assignment.MaxScore {
		return nil, ErrValidation
	}

	err = s.DB.Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{"grade": grade, "feedback": feedback}).Error
	if err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

func (s *SubmissionStore) assignment(id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := s.DB.First(&assignment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
