package services

import (
	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/interval"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewQuestionService(db *gorm.DB, cfg *config.Config) *QuestionService {
	return &QuestionService{db: db, cfg: cfg}
}

type QuestionInput struct {
	Text      string  `json:"text" binding:"required"`
	Resumable bool    `json:"resumable"`
	Duration  *string `json:"duration"`
}

func (s *QuestionService) Add(actorID, quizID uuid.UUID, input QuestionInput) (*models.Question, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can add a question to this quiz")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("cannot add a question to a published quiz")
	}

	var questionCount int64
	if err := s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&questionCount).Error; err != nil {
		return nil, err
	}
	if questionCount >= int64(s.cfg.MaxQuestionsPerQuiz) {
		return nil, apperr.ConstraintViolation("cannot add more questions to this quiz")
	}

	duration, err := interval.ParseOptional(input.Duration)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		QuizID:    quizID,
		Text:      input.Text,
		Resumable: input.Resumable,
		Duration:  duration,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Get returns a question visible to the actor: the quiz author always, other
// users only once they have started a submission against the quiz.
func (s *QuestionService) Get(actorID, questionID uuid.UUID) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	if err := s.checkReadAccess(actorID, question.QuizID); err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) ListByQuiz(actorID, quizID uuid.UUID, skip, limit int) ([]models.Question, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if err := s.checkReadAccess(actorID, quizID); err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit)
	var questions []models.Question
	err := s.db.Where("quiz_id = ?", quizID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&questions).Error
	return questions, err
}

func (s *QuestionService) Update(actorID, questionID uuid.UUID, input QuestionInput) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can edit this question")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("a question on a published quiz cannot be edited")
	}

	duration, err := interval.ParseOptional(input.Duration)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"text":      input.Text,
		"resumable": input.Resumable,
		"duration":  duration,
	}
	if err := s.db.Model(&question).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Delete removes the question together with its answers, attempts and their
// solutions in one transaction.
func (s *QuestionService) Delete(actorID, questionID uuid.UUID) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can delete this question")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("a question on a published quiz cannot be deleted")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Model(&models.Attempt{}).Select("id").Where("question_id = ?", questionID)
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", questionID)

		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&models.Solution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.Solution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// checkReadAccess gates question and answer reads: the quiz author always has
// access, anyone else must have at least one submission against the quiz.
func (s *QuestionService) checkReadAccess(actorID, quizID uuid.UUID) error {
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
		return apperr.Forbidden("you have to start working on the quiz before accessing its questions")
	}
	return nil
}
