package services

import (
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAnswerService(db *gorm.DB, cfg *config.Config) *AnswerService {
	return &AnswerService{db: db, cfg: cfg}
}

type AnswerCreateInput struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect *bool  `json:"is_correct" binding:"required"`
}

type AnswerUpdateInput struct {
	Text string `json:"text" binding:"required"`
}

// Add inserts an answer and redistributes points across its sign partition:
// the new answer and every existing sibling of the same correctness end up
// with point = ±1/(partition size), so each partition keeps summing to ±1.
// The opposite partition is untouched.
func (s *AnswerService) Add(actorID, questionID uuid.UUID, input AnswerCreateInput) (*models.Answer, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author of the quiz can add an answer to this question")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("cannot add an answer to a question of a published quiz")
	}

	var answer models.Answer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Touching the parent question row first takes a row lock, so two
		// concurrent inserts on the same question cannot both read a stale
		// partition count.
		if err := tx.Model(&models.Question{}).
			Where("id = ?", questionID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var totalCount int64
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", questionID).
			Count(&totalCount).Error; err != nil {
			return err
		}
		if totalCount >= int64(s.cfg.MaxAnswersPerQuestion) {
			return apperr.ConstraintViolation("cannot add more answers to this question")
		}

		partition := tx.Model(&models.Answer{}).Where("question_id = ?", questionID)
		totalPoint := 1.0
		if *input.IsCorrect {
			partition = partition.Where("point > 0")
		} else {
			partition = partition.Where("point < 0")
			totalPoint = -1.0
		}
		var partitionCount int64
		if err := partition.Count(&partitionCount).Error; err != nil {
			return err
		}

		point := totalPoint / float64(partitionCount+1)
		sibling := tx.Model(&models.Answer{}).Where("question_id = ?", questionID)
		if *input.IsCorrect {
			sibling = sibling.Where("point > 0")
		} else {
			sibling = sibling.Where("point < 0")
		}
		if err := sibling.Update("point", point).Error; err != nil {
			return err
		}

		answer = models.Answer{
			QuestionID: questionID,
			Text:       input.Text,
			Point:      point,
		}
		return tx.Create(&answer).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Get returns an answer under the same visibility rule as questions.
func (s *AnswerService) Get(actorID, answerID uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.First(&answer, "id = ?", answerID).Error; err != nil {
		return nil, apperr.NotFound("answer not found")
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", answer.QuestionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	if err := s.checkReadAccess(actorID, question.QuizID); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *AnswerService) ListByQuestion(actorID, questionID uuid.UUID, skip, limit int) ([]models.Answer, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	if err := s.checkReadAccess(actorID, question.QuizID); err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit)
	var answers []models.Answer
	err := s.db.Where("question_id = ?", questionID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&answers).Error
	return answers, err
}

// Update edits the answer text only. Correctness is fixed at creation;
// flipping it would require re-redistribution, which is not supported.
func (s *AnswerService) Update(actorID, answerID uuid.UUID, input AnswerUpdateInput) (*models.Answer, error) {
	answer, quiz, err := s.getWithQuiz(answerID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can edit this answer")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("an answer of a question on a published quiz cannot be edited")
	}

	if err := s.db.Model(answer).Update("text", input.Text).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// Delete removes the answer and its solutions. Remaining siblings keep their
// points; no redistribution happens on deletion.
func (s *AnswerService) Delete(actorID, answerID uuid.UUID) (*models.Answer, error) {
	answer, quiz, err := s.getWithQuiz(answerID)
	if err != nil {
		return nil, err
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can delete this answer")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("an answer of a question on a published quiz cannot be deleted")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", answerID).Delete(&models.Solution{}).Error; err != nil {
			return err
		}
		return tx.Delete(answer).Error
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) getWithQuiz(answerID uuid.UUID) (*models.Answer, *models.Quiz, error) {
	var answer models.Answer
	if err := s.db.First(&answer, "id = ?", answerID).Error; err != nil {
		return nil, nil, apperr.NotFound("answer not found")
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", answer.QuestionID).Error; err != nil {
		return nil, nil, apperr.NotFound("question not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, nil, apperr.NotFound("quiz not found")
	}
	return &answer, &quiz, nil
}

func (s *AnswerService) checkReadAccess(actorID, quizID uuid.UUID) error {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID == actorID {
		return nil
	}
	var submissionCount int64
	if err := s.db.Model(&models.Submission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, actorID).
		Count(&submissionCount).Error; err != nil {
		return err
	}
	if submissionCount == 0 {
		return apperr.Forbidden("you have to start working on the quiz before accessing its answers")
	}
	return nil
}
