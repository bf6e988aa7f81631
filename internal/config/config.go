package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	JWTSecret                string
	AccessTokenExpireMinutes int

	MinQuestionsPerQuiz   int
	MaxQuestionsPerQuiz   int
	MinAnswersPerQuestion int
	MaxAnswersPerQuestion int
	MaxSubmissionsPerQuiz int
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "quizar"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:                getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8),

		MinQuestionsPerQuiz:   getEnvInt("MIN_QUESTIONS_PER_QUIZ", 1),
		MaxQuestionsPerQuiz:   getEnvInt("MAX_QUESTIONS_PER_QUIZ", 10),
		MinAnswersPerQuestion: getEnvInt("MIN_ANSWER_PER_QUESTION", 1),
		MaxAnswersPerQuestion: getEnvInt("MAX_ANSWER_PER_QUESTION", 5),
		MaxSubmissionsPerQuiz: getEnvInt("MAX_SUBMISSION_PER_QUIZ", 1),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
