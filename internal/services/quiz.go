package services

import (
	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/interval"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewQuizService(db *gorm.DB, cfg *config.Config) *QuizService {
	return &QuizService{db: db, cfg: cfg}
}

type QuizInput struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	Resumable   bool    `json:"resumable"`
	Duration    *string `json:"duration"`
}

func (s *QuizService) Create(authorID uuid.UUID, input QuizInput) (*models.Quiz, error) {
	duration, err := interval.ParseOptional(input.Duration)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		AuthorID:    authorID,
		Title:       input.Title,
		Description: input.Description,
		Resumable:   input.Resumable,
		Duration:    duration,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Get returns a quiz visible to the actor: the author always sees it,
// everyone else only once it is published.
func (s *QuizService) Get(actorID, quizID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID && !quiz.Published {
		return nil, apperr.Forbidden("you cannot access an unpublished quiz of another user")
	}
	return &quiz, nil
}

func (s *QuizService) ListByAuthor(authorID uuid.UUID, skip, limit int) ([]models.Quiz, error) {
	skip, limit = normalizePage(skip, limit)
	var quizzes []models.Quiz
	err := s.db.Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) ListPublished(skip, limit int) ([]models.Quiz, error) {
	skip, limit = normalizePage(skip, limit)
	var quizzes []models.Quiz
	err := s.db.Where("published = ?", true).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) Update(actorID, quizID uuid.UUID, input QuizInput) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can edit this quiz")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("published quiz cannot be edited")
	}

	duration, err := interval.ParseOptional(input.Duration)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"resumable":   input.Resumable,
		"duration":    duration,
	}
	if err := s.db.Model(&quiz).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Publish flips the quiz to published once its question and per-question
// answer counts fall within the configured bounds. Publication is terminal.
func (s *QuizService) Publish(actorID, quizID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can publish this quiz")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("quiz already published")
	}

	var questions []models.Question
	if err := s.db.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) < s.cfg.MinQuestionsPerQuiz {
		return nil, apperr.PublishPrecondition(
			"cannot publish quiz with less than %d questions (MIN_QUESTIONS_PER_QUIZ)",
			s.cfg.MinQuestionsPerQuiz)
	}
	if len(questions) > s.cfg.MaxQuestionsPerQuiz {
		return nil, apperr.PublishPrecondition(
			"cannot publish quiz with more than %d questions (MAX_QUESTIONS_PER_QUIZ)",
			s.cfg.MaxQuestionsPerQuiz)
	}
	for _, question := range questions {
		var answerCount int64
		if err := s.db.Model(&models.Answer{}).
			Where("question_id = ?", question.ID).
			Count(&answerCount).Error; err != nil {
			return nil, err
		}
		if answerCount < int64(s.cfg.MinAnswersPerQuestion) {
			return nil, apperr.PublishPrecondition(
				"cannot publish quiz that has a question with less than %d answers (MIN_ANSWER_PER_QUESTION)",
				s.cfg.MinAnswersPerQuestion)
		}
		if answerCount > int64(s.cfg.MaxAnswersPerQuestion) {
			return nil, apperr.PublishPrecondition(
				"cannot publish quiz that has a question with more than %d answers (MAX_ANSWER_PER_QUESTION)",
				s.cfg.MaxAnswersPerQuestion)
		}
	}

	if err := s.db.Model(&quiz).Update("published", true).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Delete removes the quiz and all of its descendants (questions, answers,
// submissions, attempts, solutions) in one transaction. Like edits, deletion
// is blocked once the quiz is published.
func (s *QuizService) Delete(actorID, quizID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID {
		return nil, apperr.Forbidden("only the author can delete this quiz")
	}
	if quiz.Published {
		return nil, apperr.InvalidTransition("published quiz cannot be deleted")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("quiz_id = ?", quizID)
		submissionIDs := tx.Model(&models.Submission{}).Select("id").Where("quiz_id = ?", quizID)
		attemptIDs := tx.Model(&models.Attempt{}).Select("id").Where("submission_id IN (?)", submissionIDs)

		if err := tx.Where("attempt_id IN (?)", attemptIDs).Delete(&models.Solution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submission_id IN (?)", submissionIDs).Delete(&models.Attempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}
