package services

import (
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewSubmissionService(db *gorm.DB, cfg *config.Config) *SubmissionService {
	return &SubmissionService{db: db, cfg: cfg, now: time.Now}
}

// NewSubmissionServiceWithClock allows deterministic timestamps in tests.
func NewSubmissionServiceWithClock(db *gorm.DB, cfg *config.Config, now func() time.Time) *SubmissionService {
	return &SubmissionService{db: db, cfg: cfg, now: now}
}

// Draft opens a new submission against a quiz. The quiz must be published
// unless the actor is its author, and the per-(user, quiz) cap applies.
// A timed quiz seeds the submission's remaining time from its duration.
func (s *SubmissionService) Draft(actorID, quizID uuid.UUID) (*models.Submission, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID && !quiz.Published {
		return nil, apperr.Forbidden("you cannot submit to an unpublished quiz of another user")
	}

	var submissionCount int64
	if err := s.db.Model(&models.Submission{}).
		Where("quiz_id = ? AND user_id = ?", quizID, actorID).
		Count(&submissionCount).Error; err != nil {
		return nil, err
	}
	if submissionCount >= int64(s.cfg.MaxSubmissionsPerQuiz) {
		return nil, apperr.ConstraintViolation(
			"you cannot make more than %d submissions to this quiz", s.cfg.MaxSubmissionsPerQuiz)
	}

	var timeRemaining *time.Duration
	if quiz.Duration != nil {
		d := *quiz.Duration
		timeRemaining = &d
	}

	submission := models.Submission{
		QuizID:        quizID,
		UserID:        actorID,
		Draft:         true,
		TimeRemaining: timeRemaining,
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// Get enforces the peek rule: the owner always sees the submission, the quiz
// author only once it is no longer draft.
func (s *SubmissionService) Get(actorID, submissionID uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", submission.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if actorID != submission.UserID && actorID != quiz.AuthorID {
		return nil, apperr.Forbidden("you don't have permission to see this submission")
	}
	if actorID != submission.UserID && submission.Draft {
		return nil, apperr.Forbidden("this submission is still in draft")
	}
	return &submission, nil
}

func (s *SubmissionService) ListByUser(userID uuid.UUID, skip, limit int) ([]models.Submission, error) {
	skip, limit = normalizePage(skip, limit)
	var submissions []models.Submission
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&submissions).Error
	return submissions, err
}

// ListByQuiz returns finalized submissions of everyone for the quiz author,
// and the actor's own submissions for anybody else (published quizzes only).
func (s *SubmissionService) ListByQuiz(actorID, quizID uuid.UUID, skip, limit int) ([]models.Submission, error) {
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}

	skip, limit = normalizePage(skip, limit)
	var submissions []models.Submission
	query := s.db.Order("created_at DESC").Offset(skip).Limit(limit)
	if quiz.AuthorID == actorID {
		query = query.Where("quiz_id = ? AND draft = ?", quizID, false)
	} else if !quiz.Published {
		return nil, apperr.Forbidden("cannot access an unpublished quiz")
	} else {
		query = query.Where("quiz_id = ? AND user_id = ?", quizID, actorID)
	}
	err := query.Find(&submissions).Error
	return submissions, err
}

// Pause stops the submission clock. Requires the quiz to be resumable.
func (s *SubmissionService) Pause(actorID, submissionID uuid.UUID) (*models.Submission, error) {
	submission, err := s.getOwnedDraft(actorID, submissionID, "pause")
	if err != nil {
		return nil, err
	}
	if submission.Paused {
		return nil, apperr.InvalidTransition("this submission is already paused")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", submission.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if !quiz.Resumable {
		return nil, apperr.InvalidTransition("this quiz is not resumable")
	}

	remaining := remainingAfter(submission.TimeRemaining, submission.UpdatedAt, s.now())
	updates := map[string]interface{}{
		"paused":         true,
		"time_remaining": remaining,
	}
	if err := s.db.Model(submission).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(submission, "id = ?", submissionID).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

// Resume restarts a paused submission. Remaining time is left untouched, so
// the interval spent paused is never deducted.
func (s *SubmissionService) Resume(actorID, submissionID uuid.UUID) (*models.Submission, error) {
	submission, err := s.getOwnedDraft(actorID, submissionID, "resume")
	if err != nil {
		return nil, err
	}
	if !submission.Paused {
		return nil, apperr.InvalidTransition("this submission is not paused")
	}

	if err := s.db.Model(submission).Update("paused", false).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

// Submit finalizes the submission: every still-draft attempt is force-
// submitted with the solutions it has so far, then the submission score is
// the sum of all attempt scores. The whole sequence is one transaction, and
// the draft flag is claimed atomically so concurrent submits cannot both
// succeed.
func (s *SubmissionService) Submit(actorID, submissionID uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if !submission.Draft {
		return nil, apperr.InvalidTransition("submission already submitted")
	}
	if submission.Paused {
		return nil, apperr.InvalidTransition("cannot submit a paused submission, resume it first")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("you have no permission to submit this draft")
	}

	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Claim the draft flag first; the second of two concurrent submits
		// sees zero rows updated and fails.
		claim := tx.Model(&models.Submission{}).
			Where("id = ? AND draft = ?", submissionID, true).
			Update("draft", false)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return apperr.InvalidTransition("submission already submitted")
		}

		var draftAttempts []models.Attempt
		if err := tx.Where("submission_id = ? AND draft = ?", submissionID, true).
			Find(&draftAttempts).Error; err != nil {
			return err
		}
		for i := range draftAttempts {
			attempt := &draftAttempts[i]
			score, err := sumSolutionPoints(tx, attempt.ID)
			if err != nil {
				return err
			}
			updates := map[string]interface{}{
				"draft":          false,
				"score":          score,
				"time_remaining": remainingAfter(attempt.TimeRemaining, attempt.UpdatedAt, now),
			}
			if err := tx.Model(attempt).Updates(updates).Error; err != nil {
				return err
			}
		}

		var score float64
		if err := tx.Model(&models.Attempt{}).
			Where("submission_id = ?", submissionID).
			Select("COALESCE(SUM(score), 0)").
			Scan(&score).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"score":          score,
			"time_remaining": remainingAfter(submission.TimeRemaining, submission.UpdatedAt, now),
		}
		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submissionID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&submission, "id = ?", submissionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *SubmissionService) getOwnedDraft(actorID, submissionID uuid.UUID, action string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if !submission.Draft {
		return nil, apperr.InvalidTransition("this submission is not draft")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("you don't have permission to %s this submission", action)
	}
	return &submission, nil
}

// sumSolutionPoints returns the attempt score: the sum of points over its
// solutions, with an empty set normalized to 0 rather than null.
func sumSolutionPoints(tx *gorm.DB, attemptID uuid.UUID) (float64, error) {
	var score float64
	err := tx.Model(&models.Solution{}).
		Where("attempt_id = ?", attemptID).
		Select("COALESCE(SUM(point), 0)").
		Scan(&score).Error
	return score, err
}
