package services

import (
	"testing"
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/models"
)

func TestQuestionAddRules(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.MaxQuestionsPerQuiz = 2
	author := createTestUser(t, db, "author@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")

	quizzes := NewQuizService(db, cfg)
	svc := NewQuestionService(db, cfg)

	quiz, err := quizzes.Create(author.ID, QuizInput{Title: "capped"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	_, err = svc.Add(stranger.ID, quiz.ID, QuestionInput{Text: "q"})
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("stranger add: got %v, want forbidden", err)
	}

	question, err := svc.Add(author.ID, quiz.ID, QuestionInput{Text: "q1", Duration: strPtr("2 minutes")})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if question.Duration == nil || *question.Duration != 2*time.Minute {
		t.Errorf("duration = %v, want 2m", question.Duration)
	}
	if _, err := svc.Add(author.ID, quiz.ID, QuestionInput{Text: "q2"}); err != nil {
		t.Fatalf("add second: %v", err)
	}
	_, err = svc.Add(author.ID, quiz.ID, QuestionInput{Text: "q3"})
	if !apperr.IsKind(err, apperr.KindConstraintViolation) {
		t.Errorf("add over cap: got %v, want constraint violation", err)
	}
}

func TestQuestionReadRequiresAuthorshipOrSubmission(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	taker := createTestUser(t, db, "taker@example.com")
	quiz, question := publishedQuiz(t, db, cfg, author, nil)

	svc := NewQuestionService(db, cfg)

	if _, err := svc.Get(author.ID, question.ID); err != nil {
		t.Errorf("author get: %v", err)
	}
	if _, err := svc.Get(taker.ID, question.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("taker get before submission: got %v, want forbidden", err)
	}

	if _, err := NewSubmissionService(db, cfg).Draft(taker.ID, quiz.ID); err != nil {
		t.Fatalf("draft submission: %v", err)
	}
	if _, err := svc.Get(taker.ID, question.ID); err != nil {
		t.Errorf("taker get after submission: %v", err)
	}
	questions, err := svc.ListByQuiz(taker.ID, quiz.ID, 0, 100)
	if err != nil {
		t.Fatalf("taker list: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("taker sees %d questions, want 1", len(questions))
	}
}

func TestQuestionUpdateOnlyWhileUnpublished(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")
	_, question := publishedQuiz(t, db, cfg, author, nil)

	svc := NewQuestionService(db, cfg)
	_, err := svc.Update(author.ID, question.ID, QuestionInput{Text: "edited"})
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("update on published quiz: got %v, want invalid transition", err)
	}
	_, err = svc.Delete(author.ID, question.ID)
	if !apperr.IsKind(err, apperr.KindInvalidTransition) {
		t.Errorf("delete on published quiz: got %v, want invalid transition", err)
	}
}

func TestQuestionDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	author := createTestUser(t, db, "author@example.com")

	quizzes := NewQuizService(db, cfg)
	questions := NewQuestionService(db, cfg)
	answers := NewAnswerService(db, cfg)

	quiz, err := quizzes.Create(author.ID, QuizInput{Title: "pruned"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	question, err := questions.Add(author.ID, quiz.ID, QuestionInput{Text: "doomed"})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	answer, err := answers.Add(author.ID, question.ID, AnswerCreateInput{Text: "a", IsCorrect: boolPtr(true)})
	if err != nil {
		t.Fatalf("add answer: %v", err)
	}

	// The author trial-runs the unpublished quiz so attempts and solutions
	// exist under the doomed question.
	submission, err := NewSubmissionService(db, cfg).Draft(author.ID, quiz.ID)
	if err != nil {
		t.Fatalf("draft submission: %v", err)
	}
	attempt, err := NewAttemptService(db, cfg).Draft(author.ID, submission.ID, question.ID)
	if err != nil {
		t.Fatalf("draft attempt: %v", err)
	}
	if _, err := NewSolutionService(db).Add(author.ID, attempt.ID, answer.ID); err != nil {
		t.Fatalf("add solution: %v", err)
	}

	if _, err := questions.Delete(author.ID, question.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"questions", &models.Question{}},
		{"answers", &models.Answer{}},
		{"attempts", &models.Attempt{}},
		{"solutions", &models.Solution{}},
	} {
		var count int64
		if err := db.Model(probe.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", probe.name, err)
		}
		if count != 0 {
			t.Errorf("%s left after question delete: %d", probe.name, count)
		}
	}

	// The submission itself survives; only question descendants go.
	var submissionCount int64
	if err := db.Model(&models.Submission{}).Count(&submissionCount).Error; err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if submissionCount != 1 {
		t.Errorf("submissions = %d, want 1", submissionCount)
	}
}
