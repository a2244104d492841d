package models

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description"`
	InstructorID uint      `json:"instructor_id" gorm:"index;not null"`
	CategoryID   *uint     `json:"category_id" gorm:"index"`
	Price        float64   `json:"price" gorm:"default:0"`
	ThumbnailURL string    `json:"thumbnail_url"`
	IsPublished  bool      `json:"is_published" gorm:"default:false"`
	IsApproved   bool      `json:"is_approved" gorm:"default:false"`
	Instructor   *User     `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Category     *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
