package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz      Quiz           `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Duration  *time.Duration `json:"duration,omitempty"`
	Resumable bool           `gorm:"not null;default:false" json:"resumable"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
