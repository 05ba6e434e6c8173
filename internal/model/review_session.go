package model

import (
	"time"

	"gorm.io/gorm"
)

// Session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

type ReviewSession struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	UserID         uint       `json:"user_id" gorm:"not null;index"`
	Status         string     `json:"status" gorm:"not null;default:'active';index"`
	TotalQuestions int        `json:"total_questions" gorm:"not null;default:0"`
	CorrectCount   int        `json:"correct_count" gorm:"not null;default:0"`
	StartedAt      time.Time  `json:"started_at" gorm:"autoCreateTime"`
	LastActivityAt time.Time  `json:"last_activity_at" gorm:"not null;index"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	Questions []GeneratedQuestion `json:"questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
