package store

import (
	"strings"

	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MinSearchLength is the shortest accepted search term.
const MinSearchLength = 2

// SearchStore runs the catalog-wide text searches. Matching lowers both
// sides so the same queries behave on postgres and sqlite.
type SearchStore struct {
	DB *gorm.DB
}

func NewSearchStore(db *gorm.DB) *SearchStore {
	return &SearchStore{DB: db}
}

// SearchResults groups the per-entity hits of a global search.
type SearchResults struct {
	Courses    []models.Course   `json:"courses"`
	Users      []models.User     `json:"users"`
	Categories []models.Category `json:"categories"`
	Lessons    []models.Lesson   `json:"lessons,omitempty"`
}

// Global searches courses, users and categories for the term, optionally
// including lessons. Prefix matches rank before substring matches.
func (s *SearchStore) Global(term string, includeLessons bool, limit int) (*SearchResults, error) {
	term = strings.TrimSpace(term)
	if len(term) < MinSearchLength {
		return nil, ErrValidation
	}
	pattern := "%" + strings.ToLower(term) + "%"
	prefix := strings.ToLower(term) + "%"

	results := SearchResults{}
	err := s.DB.Preload("Instructor").Preload("Category").
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Clauses(prefixRank("title", prefix)).
		Limit(limit).Find(&results.Courses).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Clauses(prefixRank("name", prefix)).
		Limit(limit).Find(&results.Users).Error
	if err != nil {
		return nil, err
	}
	err = s.DB.
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Limit(limit).Find(&results.Categories).Error
	if err != nil {
		return nil, err
	}
	if includeLessons {
		err = s.DB.
			Where("LOWER(title) LIKE ?", pattern).
			Clauses(prefixRank("title", prefix)).
			Limit(limit).Find(&results.Lessons).Error
		if err != nil {
			return nil, err
		}
	}
	return &results, nil
}

// prefixRank orders prefix matches on col ahead of substring matches.
func prefixRank(col, prefix string) clause.OrderBy {
	return clause.OrderBy{Expression: clause.Expr{
		SQL:                "CASE WHEN LOWER(" + col + ") LIKE ? THEN 0 ELSE 1 END, " + col + " ASC",
		Vars:               []interface{}{prefix},
		WithoutParentheses: true,
	}}
}

// CourseFilter narrows a course search.
type CourseFilter struct {
	Term         string
	CategoryID   *uint
	InstructorID *uint
	MinPrice     *float64
	MaxPrice     *float64
	Sort         string // "newest", "price_asc", "price_desc", "title"
	Limit        int
	Offset       int
}

// Courses runs a filtered course search.
func (s *SearchStore) Courses(filter CourseFilter) ([]models.Course, error) {
	query := s.DB.Model(&models.Course{}).Preload("Instructor").Preload("Category")

	if term := strings.TrimSpace(filter.Term); term != "" {
		if len(term) < MinSearchLength {
			return nil, ErrValidation
		}
		pattern := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filter.InstructorID)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	switch filter.Sort {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "title":
		query = query.Order("title ASC")
	default:
		query = query.Order("created_at DESC")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	var courses []models.Course
	err := query.Limit(limit).Offset(filter.Offset).Find(&courses).Error
	return courses, err
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Type  string `json:"type"` // "course" or "category"
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// Suggestions returns course titles and category names matching the prefix.
func (s *SearchStore) Suggestions(term string, limit int) ([]Suggestion, error) {
	term = strings.TrimSpace(term)
	if len(term) < MinSearchLength {
		return nil, ErrValidation
	}
	prefix := strings.ToLower(term) + "%"
	if limit <= 0 {
		limit = 10
	}

	suggestions := []Suggestion{}
	rows := []Suggestion{}
	err := s.DB.Model(&models.Course{}).
		Select("'course' AS type, id, title AS label").
		Where("LOWER(title) LIKE ?", prefix).
		Order("title ASC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, rows...)

	rows = rows[:0]
	err = s.DB.Model(&models.Category{}).
		Select("'category' AS type, id, name AS label").
		Where("LOWER(name) LIKE ?", prefix).
		Order("name ASC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	suggestions = append(suggestions, rows...)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// Users searches users by name or email, admin reporting only.
func (s *SearchStore) Users(term string, limit int) ([]models.User, error) {
	term = strings.TrimSpace(term)
	if len(term) < MinSearchLength {
		return nil, ErrValidation
	}
	pattern := "%" + strings.ToLower(term) + "%"
	if limit <= 0 {
		limit = 20
	}

	var users []models.User
	err := s.DB.
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("name ASC").Limit(limit).Find(&users).Error
	return users, err
}
