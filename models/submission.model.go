package models

import (
	"time"

	"gorm.io/gorm"
)

type Submission struct {
	gorm.Model
	AssignmentID  uint       `json:"assignment_id" gorm:"index;not null"`
	UserID        uint       `json:"user_id" gorm:"index;not null"`
	SubmissionURL string     `json:"submission_url" gorm:"not null"`
	Grade         *float64   `json:"grade"`
	Feedback      string     `json:"feedback"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	Assignment    Assignment `json:"-" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	User          User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
