package store

import (
	"errors"
	"strings"
	"time"

	"lms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the credential store: it owns password hashing and every
// query that touches the users table.
type UserStore struct {
	DB   *gorm.DB
	Cost int // bcrypt cost
}

func NewUserStore(db *gorm.DB, cost int) *UserStore {
	return &UserStore{DB: db, Cost: cost}
}

// Create registers a password-based user. The raw password is hashed before
// storage; a duplicate email maps to ErrConflict.
func (s *UserStore) Create(email, rawPassword, name, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), s.Cost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: &hashed,
		Name:         strings.TrimSpace(name),
		Role:         role,
		IsActive:     true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyPassword checks a raw password against a stored hash.
func (s *UserStore) VerifyPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// UpdatePassword re-hashes and overwrites the stored credential.
func (s *UserStore) UpdatePassword(id uint, newRaw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newRaw), s.Cost)
	if err != nil {
		return err
	}
	hashed := string(hash)
	result := s.DB.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": hashed, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Update applies a partial update restricted to mutable profile fields.
// An empty field set is rejected.
func (s *UserStore) Update(id uint, fields map[string]interface{}) (*models.User, error) {
	updates := map[string]interface{}{}
	for key, value := range fields {
		switch key {
		case "name", "role", "is_active", "avatar":
			updates[key] = value
		}
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}
	if role, ok := updates["role"].(string); ok && !models.ValidRole(role) {
		return nil, ErrValidation
	}
	updates["updated_at"] = time.Now()

	result := s.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.FindByID(id)
}

func (s *UserStore) Delete(id uint) error {
	result := s.DB.Unscoped().Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll returns users ordered newest-first.
func (s *UserStore) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

// TouchLastLogin records a successful authentication.
func (s *UserStore) TouchLastLogin(id uint) error {
	return s.DB.Model(&models.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// FindByOAuth looks up a user by third-party subject id and provider.
func (s *UserStore) FindByOAuth(subject, provider string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("oauth_id = ? AND oauth_provider = ?", subject, provider).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// OAuthProfile is the third-party identity assertion handed to CreateOAuth.
type OAuthProfile struct {
	Subject  string
	Provider string
	Email    string
	Name     string
	Avatar   string
}

// CreateOAuth creates a local account for a third-party identity.
// OAuth users default to the student role and carry no password hash.
func (s *UserStore) CreateOAuth(profile OAuthProfile) (*models.User, error) {
	user := models.User{
		Email:         strings.ToLower(profile.Email),
		Name:          profile.Name,
		Avatar:        profile.Avatar,
		Role:          models.RoleStudent,
		IsActive:      true,
		OAuthID:       &profile.Subject,
		OAuthProvider: &profile.Provider,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// UserActivity is a per-user report row with the enrollment count.
type UserActivity struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLogin   *time.Time `json:"last_login"`
	CourseCount int64      `json:"course_count"`
}

// Activity returns users with their enrollment counts, optionally filtered
// by a last_login window.
func (s *UserStore) Activity(start, end *time.Time) ([]UserActivity, error) {
	query := s.DB.Model(&models.User{}).
		Select("users.id, users.email, users.name, users.role, users.created_at, users.last_login, " +
			"(SELECT COUNT(*) FROM enrollments WHERE enrollments.user_id = users.id) AS course_count")
	if start != nil {
		query = query.Where("last_login >= ?", *start)
	}
	if end != nil {
		query = query.Where("last_login <= ?", *end)
	}

	var rows []UserActivity
	err := query.Scan(&rows).Error
	return rows, err
}

func (s *UserStore) CountTotal() (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountActiveSince counts users whose last login is at or after t.
func (s *UserStore) CountActiveSince(t time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.User{}).Where("last_login >= ?", t).Count(&count).Error
	return count, err
}
