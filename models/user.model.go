package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles form a closed set; authorization checks compare against these.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  *string    `json:"-"` // nil for OAuth-only accounts
	Name          string     `json:"name"`
	Avatar        string     `json:"avatar"`
	Role          string     `json:"role" gorm:"default:'student'"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	OAuthID       *string    `json:"oauth_id,omitempty" gorm:"column:oauth_id;uniqueIndex:idx_users_oauth"`
	OAuthProvider *string    `json:"oauth_provider,omitempty" gorm:"column:oauth_provider;uniqueIndex:idx_users_oauth"`
	LastLogin     *time.Time `json:"last_login"`
}

// Public returns the fields safe to expose in API responses.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":     u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"role":   u.Role,
		"avatar": u.Avatar,
	}
}
