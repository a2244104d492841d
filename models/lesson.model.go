package models

import "gorm.io/gorm"

// Lesson content types
const (
	ContentVideo      = "video"
	ContentQuiz       = "quiz"
	ContentText       = "text"
	ContentAssignment = "assignment"
)

type Lesson struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	ContentType string `json:"content_type" gorm:"not null"` // video, quiz, text, assignment
	ContentURL  string `json:"content_url"`
	Duration    int    `json:"duration" gorm:"default:0"` // minutes
	Position    int    `json:"position" gorm:"default:0"`
	IsFree      bool   `json:"is_free" gorm:"default:false"`
	Module      Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
