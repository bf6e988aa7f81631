package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt is one question worked within a submission. The composite unique
// index prevents attempting the same question twice.
type Attempt struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_submission_question" json:"submission_id"`
	Submission    Submission     `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_submission_question" json:"question_id"`
	Question      Question       `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Draft         bool           `gorm:"not null;default:true" json:"draft"`
	Skipped       bool           `gorm:"not null;default:false" json:"skipped"`
	Score         *float64       `json:"score,omitempty"`
	TimeRemaining *time.Duration `json:"time_remaining,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
