package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	gorm.Model
	LessonID      uint           `json:"lesson_id" gorm:"index;not null"`
	Question      string         `json:"question" gorm:"not null"`
	Options       datatypes.JSON `json:"options"` // array of answer strings
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	MaxScore      float64        `json:"max_score" gorm:"default:10"`
	Lesson        Lesson         `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
