package services

import (
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAttemptService(db *gorm.DB, cfg *config.Config) *AttemptService {
	return &AttemptService{db: db, cfg: cfg, now: time.Now}
}

// NewAttemptServiceWithClock allows deterministic timestamps in tests.
func NewAttemptServiceWithClock(db *gorm.DB, cfg *config.Config, now func() time.Time) *AttemptService {
	return &AttemptService{db: db, cfg: cfg, now: now}
}

// Draft opens an attempt at a question within a submission. The question must
// belong to the submission's quiz, the quiz must be published unless the
// actor authored it, and a question can be attempted at most once per
// submission. A timed question seeds the attempt's remaining time.
func (s *AttemptService) Draft(actorID, submissionID, questionID uuid.UUID) (*models.Attempt, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	if submission.QuizID != question.QuizID {
		return nil, apperr.ConstraintViolation("can only attempt a question on the same quiz as the submission")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("only the submission owner can attempt its questions")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID && !quiz.Published {
		return nil, apperr.Forbidden("you cannot attempt a question of an unpublished quiz of another user")
	}

	var existingCount int64
	if err := s.db.Model(&models.Attempt{}).
		Where("submission_id = ? AND question_id = ?", submissionID, questionID).
		Count(&existingCount).Error; err != nil {
		return nil, err
	}
	if existingCount > 0 {
		return nil, apperr.ConstraintViolation("you already attempted this question")
	}

	var timeRemaining *time.Duration
	if question.Duration != nil {
		d := *question.Duration
		timeRemaining = &d
	}

	attempt := models.Attempt{
		SubmissionID:  submissionID,
		QuestionID:    questionID,
		Draft:         true,
		TimeRemaining: timeRemaining,
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, duplicateAsConstraint(err, "you already attempted this question")
	}
	return &attempt, nil
}

// Get applies the same peek rule as submissions: the owner always, the quiz
// author only once the parent submission is no longer draft.
func (s *AttemptService) Get(actorID, attemptID uuid.UUID) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	if err := s.checkReadAccess(actorID, attempt.SubmissionID); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptService) ListBySubmission(actorID, submissionID uuid.UUID, skip, limit int) ([]models.Attempt, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if err := s.checkReadAccess(actorID, submissionID); err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit)
	var attempts []models.Attempt
	err := s.db.Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// Skip stops the attempt clock. Requires the question to be resumable.
func (s *AttemptService) Skip(actorID, attemptID uuid.UUID) (*models.Attempt, error) {
	attempt, err := s.getOwnedDraft(actorID, attemptID, "skip")
	if err != nil {
		return nil, err
	}
	if attempt.Skipped {
		return nil, apperr.InvalidTransition("this attempt is already skipped")
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", attempt.QuestionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	if !question.Resumable {
		return nil, apperr.InvalidTransition("this question is not resumable")
	}

	remaining := remainingAfter(attempt.TimeRemaining, attempt.UpdatedAt, s.now())
	updates := map[string]interface{}{
		"skipped":        true,
		"time_remaining": remaining,
	}
	if err := s.db.Model(attempt).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(attempt, "id = ?", attemptID).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

// Resume restarts a skipped attempt without touching its remaining time.
func (s *AttemptService) Resume(actorID, attemptID uuid.UUID) (*models.Attempt, error) {
	attempt, err := s.getOwnedDraft(actorID, attemptID, "resume")
	if err != nil {
		return nil, err
	}
	if !attempt.Skipped {
		return nil, apperr.InvalidTransition("this attempt is not skipped")
	}

	if err := s.db.Model(attempt).Update("skipped", false).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

// Submit finalizes the attempt: score is the sum of its solution points and
// the clock stops for good.
func (s *AttemptService) Submit(actorID, attemptID uuid.UUID) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	if !attempt.Draft {
		return nil, apperr.InvalidTransition("attempt already submitted")
	}
	if attempt.Skipped {
		return nil, apperr.InvalidTransition("cannot submit a skipped attempt, resume it first")
	}
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", attempt.SubmissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("you have no permission to submit this draft")
	}

	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Attempt{}).
			Where("id = ? AND draft = ?", attemptID, true).
			Update("draft", false)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return apperr.InvalidTransition("attempt already submitted")
		}

		score, err := sumSolutionPoints(tx, attemptID)
		if err != nil {
			return err
		}
		updates := map[string]interface{}{
			"score":          score,
			"time_remaining": remainingAfter(attempt.TimeRemaining, attempt.UpdatedAt, now),
		}
		if err := tx.Model(&models.Attempt{}).
			Where("id = ?", attemptID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&attempt, "id = ?", attemptID).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptService) getOwnedDraft(actorID, attemptID uuid.UUID, action string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	if !attempt.Draft {
		return nil, apperr.InvalidTransition("this attempt is not draft")
	}
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", attempt.SubmissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("you don't have permission to %s this attempt", action)
	}
	return &attempt, nil
}

// checkReadAccess mirrors the submission peek rule for nested reads.
func (s *AttemptService) checkReadAccess(actorID, submissionID uuid.UUID) error {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return apperr.NotFound("submission not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", submission.QuizID).Error; err != nil {
		return apperr.NotFound("quiz not found")
	}
	if actorID != submission.UserID && actorID != quiz.AuthorID {
		return apperr.Forbidden("you don't have permission to see this attempt")
	}
	if actorID != submission.UserID && submission.Draft {
		return apperr.Forbidden("this attempt is still in draft")
	}
	return nil
}
