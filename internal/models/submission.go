package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission is one user's run at a quiz. Draft submissions are in progress;
// submitting is irreversible and snapshots both score and remaining time.
type Submission struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz          Quiz           `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Draft         bool           `gorm:"not null;default:true" json:"draft"`
	Paused        bool           `gorm:"not null;default:false" json:"paused"`
	Score         *float64       `json:"score,omitempty"`
	TimeRemaining *time.Duration `json:"time_remaining,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
