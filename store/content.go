package store

import (
	"encoding/json"
	"errors"

	"lms/models"

	"gorm.io/gorm"
)

// ContentStore owns modules, lessons, quizzes and assignments — everything
// nested under a course.
type ContentStore struct {
	DB *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{DB: db}
}

func (s *ContentStore) CreateModule(module *models.Module) error {
	if err := s.DB.Create(module).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrForeignKey
		}
		return err
	}
	return nil
}

func (s *ContentStore) FindModule(id uint) (*models.Module, error) {
	var module models.Module
	err := s.DB.First(&module, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindModulesByCourse returns a course's modules in position order.
func (s *ContentStore) FindModulesByCourse(courseID uint) ([]models.Module, error) {
	var modules []models.Module
	err := s.DB.Where("course_id = ?", courseID).
		Order("position ASC, id ASC").Find(&modules).Error
	return modules, err
}

func (s *ContentStore) UpdateModule(id uint, fields map[string]interface{}) (*models.Module, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "title", "description", "position":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Module{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindModule(id)
}

func (s *ContentStore) DeleteModule(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Module{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContentStore) CreateLesson(lesson *models.Lesson) error {
	switch lesson.ContentType {
	case models.ContentVideo, models.ContentQuiz, models.ContentText, models.ContentAssignment:
	default:
		return ErrValidation
	}
	if err := s.DB.Create(lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrForeignKey
		}
		return err
	}
	return nil
}

func (s *ContentStore) FindLesson(id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.DB.First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (s *ContentStore) FindLessonsByModule(moduleID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.DB.Where("module_id = ?", moduleID).
		Order("position ASC, id ASC").Find(&lessons).Error
	return lessons, err
}

func (s *ContentStore) UpdateLesson(id uint, fields map[string]interface{}) (*models.Lesson, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "title", "content_type", "content_url", "duration", "position", "is_free":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Lesson{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindLesson(id)
}

func (s *ContentStore) DeleteLesson(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Lesson{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateQuiz validates that the correct answer is one of the options
// before writing.
func (s *ContentStore) CreateQuiz(quiz *models.Quiz) error {
	var options []string
	if err := json.Unmarshal(quiz.Options, &options); err != nil || len(options) < 2 {
		return ErrValidation
	}
	if !contains(options, quiz.CorrectAnswer) {
		return ErrValidation
	}
	if err := s.DB.Create(quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrForeignKey
		}
		return err
	}
	return nil
}

func (s *ContentStore) FindQuiz(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.DB.First(&quiz, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *ContentStore) FindQuizzesByLesson(lessonID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.DB.Where("lesson_id = ?", lessonID).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (s *ContentStore) UpdateQuiz(id uint, fields map[string]interface{}) (*models.Quiz, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "question", "options", "correct_answer", "max_score":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Quiz{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindQuiz(id)
}

func (s *ContentStore) DeleteQuiz(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ContentStore) CreateAssignment(assignment *models.Assignment) error {
	if err := s.DB.Create(assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrForeignKey
		}
		return err
	}
	return nil
}

func (s *ContentStore) FindAssignment(id uint) (*models.Assignment, error) {
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

func (s *ContentStore) FindAssignmentsByLesson(lessonID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.DB.Where("lesson_id = ?", lessonID).Order("deadline ASC").Find(&assignments).Error
	return assignments, err
}

func (s *ContentStore) UpdateAssignment(id uint, fields map[string]interface{}) (*models.Assignment, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "title", "description", "deadline", "max_score":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Assignment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindAssignment(id)
}

func (s *ContentStore) DeleteAssignment(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
