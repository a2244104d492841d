package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	LessonID    uint      `json:"lesson_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	MaxScore    float64   `json:"max_score" gorm:"default:100"`
	Lesson      Lesson    `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
