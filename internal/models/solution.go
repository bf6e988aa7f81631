package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Solution records one answer selected within an attempt. Point is copied
// from the answer at selection time, so later redistribution on the question
// never changes an existing solution.
type Solution struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_solution_attempt_answer" json:"attempt_id"`
	Attempt   Attempt   `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_solution_attempt_answer" json:"answer_id"`
	Answer    Answer    `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	Point     float64   `gorm:"not null" json:"point"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Solution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
