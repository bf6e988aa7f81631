package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Answer point values are owned by the scoring logic: positive points mark
// correct answers, negative points incorrect ones, and each sign partition
// always sums to +1 or -1 across the question.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Point      float64   `gorm:"not null" json:"point"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
