package store

import (
	"errors"
	"strings"

	"lms/models"

	"gorm.io/gorm"
)

// CatalogStore owns categories and courses.
type CatalogStore struct {
	DB *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{DB: db}
}

func (s *CatalogStore) CreateCategory(name string) (*models.Category, error) {
	category := models.Category{Name: strings.TrimSpace(name)}
	if category.Name == "" {
		return nil, ErrValidation
	}
	if err := s.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &category, nil
}

func (s *CatalogStore) FindCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.DB.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CatalogStore) FindCategory(id uint) (*models.Category, error) {
	var category models.Category
	err := s.DB.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogStore) UpdateCategory(id uint, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindCategory(id)
}

// DeleteCategory refuses to remove a category that still has courses.
func (s *CatalogStore) DeleteCategory(id uint) error {
	var attached int64
	if err := s.DB.Model(&models.Course{}).Where("category_id = ?", id).Count(&attached).Error; err != nil {
		return err
	}
	if attached > 0 {
		return ErrForeignKey
	}
	result := s.DB.Unscoped().Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CatalogStore) CreateCourse(course *models.Course) error {
	if err := s.DB.Create(course).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrForeignKey
		}
		return err
	}
	return nil
}

func (s *CatalogStore) FindCourses(limit, offset int) ([]models.Course, error) {
	var courses []models.Course
	err := s.DB.Preload("Instructor").Preload("Category").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&courses).Error
	return courses, err
}

func (s *CatalogStore) FindCourse(id uint) (*models.Course, error) {
	var course models.Course
	err := s.DB.Preload("Instructor").Preload("Category").First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CatalogStore) FindCoursesByCategory(categoryID uint) ([]models.Course, error) {
	if _, err := s.FindCategory(categoryID); err != nil {
		return nil, err
	}
	var courses []models.Course
	err := s.DB.Preload("Instructor").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// UpdateCourse applies a partial update restricted to course fields the
// API exposes. Empty sets are rejected.
func (s *CatalogStore) UpdateCourse(id uint, fields map[string]interface{}) (*models.Course, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "title", "description", "category_id", "price", "thumbnail_url", "is_published", "is_approved":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	result := s.DB.Model(&models.Course{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return nil, ErrForeignKey
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindCourse(id)
}

func (s *CatalogStore) DeleteCourse(id uint) error {
	result := s.DB.Unscoped().Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CoursePopularity is one report row: a course and its enrollment count.
type CoursePopularity struct {
	CourseID    uint   `json:"course_id"`
	Title       string `json:"title"`
	Instructor  string `json:"instructor"`
	Enrollments int64  `json:"enrollments"`
}

// PopularCourses ranks courses by enrollment count, most enrolled first.
func (s *CatalogStore) PopularCourses(limit int) ([]CoursePopularity, error) {
	var rows []CoursePopularity
	err := s.DB.Model(&models.Course{}).
		Select("courses.id AS course_id, courses.title, users.name AS instructor, COUNT(enrollments.id) AS enrollments").
		Joins("JOIN users ON users.id = courses.instructor_id").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Group("courses.id, courses.title, users.name").
		Order("enrollments DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *CatalogStore) CountCourses() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Course{}).Count(&count).Error
	return count, err
}
