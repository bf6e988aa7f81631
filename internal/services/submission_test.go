package services

import (
	"testing"
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/models"
)

func TestSubmissionDraftSeedsTimeRemaining(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	quiz, _ := publishedQuiz(t, db, cfg, author, strPtr("1 hour"))

	svc := NewSubmissionService(db, cfg)
	submission, err := svc.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if !submission.Draft {
		t.Error("new submission must be draft")
	}
	if submission.TimeRemaining == nil || *submission.TimeRemaining != time.Hour {
		t.Errorf("time remaining = %v, want 1h", submission.TimeRemaining)
	}
	if submission.Score != nil {
		t.Errorf("score = %v, want nil before submit", submission.Score)
	}
}

func TestSubmissionDraftRules(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	svc := NewSubmissionService(db, cfg)

	unpublished, err := NewQuizService(db, cfg).Create(author.ID, QuizInput{Title: "draft quiz"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	_, err = svc.Draft(taker.ID, unpublished.ID)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("draft on unpublished quiz: got %v, want forbidden", err)
	}
	// The author can trial-run their own unpublished quiz.
	if _, err := svc.Draft(author.ID, unpublished.ID); err != nil {
		t.Errorf("author draft on own unpublished quiz: %v", err)
	}

	quiz, _ := publishedQuiz(t, db, cfg, author, nil)
	if _, err := svc.Draft(taker.ID, quiz.ID); err != nil {
		t.Fatalf("first draft: %v", err)
	}
	_, err = svc.Draft(taker.ID, quiz.ID)
	if !apperr.IsKind(err, apperr.KindConstraintViolation) {
		t.Errorf("second draft over cap: got %v, want constraint violation", err)
	}
}

func TestSubmissionPauseDeductsElapsedTime(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	quiz, _ := publishedQuiz(t, db, cfg, author, strPtr("1 hour"))

	submission, err := NewSubmissionService(db, cfg).Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	later := NewSubmissionServiceWithClock(db, cfg, func() time.Time {
		return time.Now().Add(10 * time.Minute)
	})
	paused, err := later.Pause(taker.ID, submission.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !paused.Paused {
		t.Error("submission not marked paused")
	}
	if paused.TimeRemaining == nil || !withinSecond(*paused.TimeRemaining, 50*time.Minute) {
		t.Errorf("time remaining after 10m = %v, want ~50m", paused.TimeRemaining)
	}
}

func TestSubmissionPauseResumeRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	quiz, _ := publishedQuiz(t, db, cfg, author, strPtr("30 minutes"))

	svc := NewSubmissionService(db, cfg)
	submission, err := svc.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	paused, err := svc.Pause(taker.ID, submission.ID)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	atPause := *paused.TimeRemaining

	if _, err := svc.Pause(taker.ID, submission.ID); !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("double pause: got %v, want invalid transition", err)
	}

	resumed, err := svc.Resume(taker.ID, submission.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.Paused {
		t.Error("submission still paused after resume")
	}

	// Resuming must not deduct the interval spent paused.
	var reloaded models.Submission
	if err := db.First(&reloaded, "id = ?", submission.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.TimeRemaining == nil || *reloaded.TimeRemaining != atPause {
		t.Errorf("time remaining changed across resume: %v, want %v", reloaded.TimeRemaining, atPause)
	}

	if _, err := svc.Resume(taker.ID, submission.ID); !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("double resume: got %v, want invalid transition", err)
	}
}

func TestSubmissionPauseRequiresResumableQuiz(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")

	quizzes := NewQuizService(db, cfg)
	questions := NewQuestionService(db, cfg)
	answers := NewAnswerService(db, cfg)

	quiz, err := quizzes.Create(author.ID, QuizInput{Title: "one-shot", Resumable: false})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	question, err := questions.Add(author.ID, quiz.ID, QuestionInput{Text: "q"})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if _, err := answers.Add(author.ID, question.ID, AnswerCreateInput{Text: "a", IsCorrect: boolPtr(true)}); err != nil {
		t.Fatalf("add answer: %v", err)
	}
	if _, err := quizzes.Publish(author.ID, quiz.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	svc := NewSubmissionService(db, cfg)
	submission, err := svc.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	_, err = svc.Pause(taker.ID, submission.ID)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Fatalf("pause on non-resumable quiz: got %v, want invalid transition", err)
	}
}

func TestSubmissionSubmitForceFinalizesDraftAttempts(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")

	quizzes := NewQuizService(db, cfg)
	questions := NewQuestionService(db, cfg)
	answers := NewAnswerService(db, cfg)

	quiz, err := quizzes.Create(author.ID, QuizInput{Title: "halves"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	question, err := questions.Add(author.ID, quiz.ID, QuestionInput{Text: "pick both"})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	first, err := answers.Add(author.ID, question.ID, AnswerCreateInput{Text: "one", IsCorrect: boolPtr(true)})
	if err != nil {
		t.Fatalf("add answer: %v", err)
	}
	if _, err := answers.Add(author.ID, question.ID, AnswerCreateInput{Text: "two", IsCorrect: boolPtr(true)}); err != nil {
		t.Fatalf("add answer: %v", err)
	}
	if _, err := quizzes.Publish(author.ID, quiz.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	submissions := NewSubmissionService(db, cfg)
	attempts := NewAttemptService(db, cfg)
	solutions := NewSolutionService(db)

	submission, err := submissions.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft submission: %v", err)
	}
	attempt, err := attempts.Draft(taker.ID, submission.ID, question.ID)
	if err != nil {
		t.Fatalf("draft attempt: %v", err)
	}
	if _, err := solutions.Add(taker.ID, attempt.ID, first.ID); err != nil {
		t.Fatalf("add solution: %v", err)
	}

	// The attempt is never submitted on its own; submitting the submission
	// finalizes it with the solutions it has.
	submitted, err := submissions.Submit(taker.ID, submission.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.Draft {
		t.Error("submission still draft after submit")
	}
	if submitted.Score == nil || !almostEqual(*submitted.Score, 0.5) {
		t.Errorf("submission score = %v, want 0.5", submitted.Score)
	}

	var finalized models.Attempt
	if err := db.First(&finalized, "id = ?", attempt.ID).Error; err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if finalized.Draft {
		t.Error("attempt still draft after submission submit")
	}
	if finalized.Score == nil || !almostEqual(*finalized.Score, 0.5) {
		t.Errorf("attempt score = %v, want 0.5", finalized.Score)
	}
}

func TestSubmissionSubmitTransitions(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	quiz, _ := publishedQuiz(t, db, cfg, author, nil)

	svc := NewSubmissionService(db, cfg)
	submission, err := svc.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	if _, err := svc.Submit(stranger.ID, submission.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("stranger submit: got %v, want forbidden", err)
	}

	if _, err := svc.Pause(taker.ID, submission.ID); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := svc.Submit(taker.ID, submission.ID); !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("submit while paused: got %v, want invalid transition", err)
	}
	if _, err := svc.Resume(taker.ID, submission.ID); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if _, err := svc.Submit(taker.ID, submission.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(taker.ID, submission.ID); !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("double submit: got %v, want invalid transition", err)
	}
	if _, err := svc.Pause(taker.ID, submission.ID); !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("pause after submit: got %v, want invalid transition", err)
	}
}

func TestSubmissionAuthorCannotPeekDrafts(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	quiz, _ := publishedQuiz(t, db, cfg, author, nil)

	svc := NewSubmissionService(db, cfg)
	submission, err := svc.Draft(taker.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}

	if _, err := svc.Get(taker.ID, submission.ID); err != nil {
		t.Errorf("owner get draft: %v", err)
	}
	if _, err := svc.Get(author.ID, submission.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("author get draft: got %v, want forbidden", err)
	}
	if _, err := svc.Get(stranger.ID, submission.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("stranger get: got %v, want forbidden", err)
	}

	listed, err := svc.ListByQuiz(author.ID, quiz.ID, 0, 100)
	if err != nil {
		t.Fatalf("author list: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("author sees %d draft submissions, want 0", len(listed))
	}

	if _, err := svc.Submit(taker.ID, submission.ID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Get(author.ID, submission.ID); err != nil {
		t.Errorf("author get after submit: %v", err)
	}
	listed, err = svc.ListByQuiz(author.ID, quiz.ID, 0, 100)
	if err != nil {
		t.Fatalf("author list after submit: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("author sees %d submissions after submit, want 1", len(listed))
	}
}
