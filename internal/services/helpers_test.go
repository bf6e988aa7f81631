package services

import (
	"testing"
	"time"

	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A pool of in-memory sqlite connections would be separate databases.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Submission{},
		&models.Attempt{},
		&models.Solution{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:                "test-secret",
		AccessTokenExpireMinutes: 60,
		MinQuestionsPerQuiz:      1,
		MaxQuestionsPerQuiz:      10,
		MinAnswersPerQuestion:    1,
		MaxAnswersPerQuestion:    5,
		MaxSubmissionsPerQuiz:    1,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "irrelevant"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &user
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// publishedQuiz builds a quiz with one question and one correct answer,
// then publishes it. Returns the quiz and its question.
func publishedQuiz(t *testing.T, db *gorm.DB, cfg *config.Config, author *models.User, duration *string) (*models.Quiz, *models.Question) {
	t.Helper()

	quizzes := NewQuizService(db, cfg)
	questions := NewQuestionService(db, cfg)
	answers := NewAnswerService(db, cfg)

	quiz, err := quizzes.Create(author.ID, QuizInput{Title: "fixture quiz", Resumable: true, Duration: duration})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	question, err := questions.Add(author.ID, quiz.ID, QuestionInput{Text: "fixture question", Resumable: true})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if _, err := answers.Add(author.ID, question.ID, AnswerCreateInput{Text: "right", IsCorrect: boolPtr(true)}); err != nil {
		t.Fatalf("add answer: %v", err)
	}
	quiz, err = quizzes.Publish(author.ID, quiz.ID)
	if err != nil {
		t.Fatalf("publish quiz: %v", err)
	}
	return quiz, question
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

// withinSecond reports whether two durations differ by less than a second,
// tolerating the wall-clock drift between fixture creation and the call
// under test.
func withinSecond(a, b time.Duration) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < time.Second
}
