package services

import (
	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SolutionService struct {
	db *gorm.DB
}

func NewSolutionService(db *gorm.DB) *SolutionService {
	return &SolutionService{db: db}
}

// Add selects an answer within an attempt. The attempt must still be draft
// and owned by the actor, and the answer must belong to the attempt's
// question. The answer's point is snapshotted onto the solution, so later
// redistribution never changes a recorded selection. Selecting the same
// answer twice violates the (attempt, answer) uniqueness.
func (s *SolutionService) Add(actorID, attemptID, answerID uuid.UUID) (*models.Solution, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	var answer models.Answer
	if err := s.db.First(&answer, "id = ?", answerID).Error; err != nil {
		return nil, apperr.NotFound("answer not found")
	}
	if attempt.QuestionID != answer.QuestionID {
		return nil, apperr.ConstraintViolation("can only select an answer on the same question as the attempt")
	}
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", attempt.SubmissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("only the submission owner can select answers")
	}
	var question models.Question
	if err := s.db.First(&question, "id = ?", answer.QuestionID).Error; err != nil {
		return nil, apperr.NotFound("question not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", question.QuizID).Error; err != nil {
		return nil, apperr.NotFound("quiz not found")
	}
	if quiz.AuthorID != actorID && !quiz.Published {
		return nil, apperr.Forbidden("you cannot select an answer of an unpublished quiz of another user")
	}
	if !attempt.Draft {
		return nil, apperr.InvalidTransition("cannot select an answer on a submitted attempt")
	}

	var existingCount int64
	if err := s.db.Model(&models.Solution{}).
		Where("attempt_id = ? AND answer_id = ?", attemptID, answerID).
		Count(&existingCount).Error; err != nil {
		return nil, err
	}
	if existingCount > 0 {
		return nil, apperr.ConstraintViolation("you already selected this answer")
	}

	solution := models.Solution{
		AttemptID: attemptID,
		AnswerID:  answerID,
		Point:     answer.Point,
	}
	if err := s.db.Create(&solution).Error; err != nil {
		return nil, duplicateAsConstraint(err, "you already selected this answer")
	}
	return &solution, nil
}

// Get applies the submission peek rule: owner always, quiz author only once
// the submission is no longer draft.
func (s *SolutionService) Get(actorID, solutionID uuid.UUID) (*models.Solution, error) {
	var solution models.Solution
	if err := s.db.First(&solution, "id = ?", solutionID).Error; err != nil {
		return nil, apperr.NotFound("solution not found")
	}
	if err := s.checkReadAccess(actorID, solution.AttemptID); err != nil {
		return nil, err
	}
	return &solution, nil
}

func (s *SolutionService) ListByAttempt(actorID, attemptID uuid.UUID, skip, limit int) ([]models.Solution, error) {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	if err := s.checkReadAccess(actorID, attemptID); err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit)
	var solutions []models.Solution
	err := s.db.Where("attempt_id = ?", attemptID).
		Order("created_at ASC").
		Offset(skip).Limit(limit).
		Find(&solutions).Error
	return solutions, err
}

// Delete unselects an answer. Only the submission owner may do it, and only
// while the attempt is still draft.
func (s *SolutionService) Delete(actorID, solutionID uuid.UUID) (*models.Solution, error) {
	var solution models.Solution
	if err := s.db.First(&solution, "id = ?", solutionID).Error; err != nil {
		return nil, apperr.NotFound("solution not found")
	}
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", solution.AttemptID).Error; err != nil {
		return nil, apperr.NotFound("attempt not found")
	}
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", attempt.SubmissionID).Error; err != nil {
		return nil, apperr.NotFound("submission not found")
	}
	if submission.UserID != actorID {
		return nil, apperr.Forbidden("only the submission owner can delete this solution")
	}
	if !attempt.Draft {
		return nil, apperr.InvalidTransition("cannot unselect an answer on a submitted attempt")
	}

	if err := s.db.Delete(&solution).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

func (s *SolutionService) checkReadAccess(actorID, attemptID uuid.UUID) error {
	var attempt models.Attempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return apperr.NotFound("attempt not found")
	}
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", attempt.SubmissionID).Error; err != nil {
		return apperr.NotFound("submission not found")
	}
	var quiz models.Quiz
	if err := s.db.First(&quiz, "id = ?", submission.QuizID).Error; err != nil {
		return apperr.NotFound("quiz not found")
	}
	if actorID != submission.UserID && actorID != quiz.AuthorID {
		return apperr.Forbidden("you don't have permission to see this solution")
	}
	if actorID != submission.UserID && submission.Draft {
		return apperr.Forbidden("the submission of this solution is still in draft")
	}
	return nil
}
