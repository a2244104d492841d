package models

import "gorm.io/gorm"

// Module groups lessons within a course, ordered by position.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"default:0"`
	Course      Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
