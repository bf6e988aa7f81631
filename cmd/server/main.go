package main

import (
	"log"

	"github.com/MasiCal354/quizar/internal/config"
	"github.com/MasiCal354/quizar/internal/database"
	"github.com/MasiCal354/quizar/internal/handlers"
	"github.com/MasiCal354/quizar/internal/middleware"
	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title           Quizar API
// @version         1.0
// @description     Quiz/assessment backend: authors build and publish quizzes, takers run timed scored submissions.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenExpireMinutes)
	quizService := services.NewQuizService(db, cfg)
	questionService := services.NewQuestionService(db, cfg)
	answerService := services.NewAnswerService(db, cfg)
	submissionService := services.NewSubmissionService(db, cfg)
	attemptService := services.NewAttemptService(db, cfg)
	solutionService := services.NewSolutionService(db)

	userHandler := handlers.NewUserHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(answerService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	solutionHandler := handlers.NewSolutionHandler(solutionService)
	utilsHandler := handlers.NewUtilsHandler()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/v1")
	auth := middleware.JWTAuth(authService)
	{
		utils := api.Group("/utils")
		{
			utils.GET("/health", utilsHandler.Health)
			utils.GET("/time", utilsHandler.Time)
		}

		user := api.Group("/user")
		{
			user.POST("/register", userHandler.Register)
			user.POST("/login", userHandler.Login)
			user.PUT("/password", auth, userHandler.UpdatePassword)
			user.GET("/me", auth, userHandler.Me)
		}

		quiz := api.Group("/quiz")
		quiz.Use(auth)
		{
			quiz.POST("", quizHandler.Create)
			quiz.GET("/_/me", quizHandler.ListMine)
			quiz.GET("/_/published", quizHandler.ListPublished)
			quiz.GET("/:id", quizHandler.Get)
			quiz.PUT("/publish/:id", quizHandler.Publish)
			quiz.PUT("/:id", quizHandler.Update)
			quiz.DELETE("/:id", quizHandler.Delete)
		}

		question := api.Group("/question")
		question.Use(auth)
		{
			question.POST("/quiz/:quiz_id", questionHandler.Add)
			question.GET("/quiz/:quiz_id", questionHandler.ListByQuiz)
			question.GET("/:id", questionHandler.Get)
			question.PUT("/:id", questionHandler.Update)
			question.DELETE("/:id", questionHandler.Delete)
		}

		answer := api.Group("/answer")
		answer.Use(auth)
		{
			answer.POST("/question/:question_id", answerHandler.Add)
			answer.GET("/question/:question_id", answerHandler.ListByQuestion)
			answer.GET("/:id", answerHandler.Get)
			answer.PUT("/:id", answerHandler.Update)
			answer.DELETE("/:id", answerHandler.Delete)
		}

		submission := api.Group("/submission")
		submission.Use(auth)
		{
			submission.POST("/quiz/:quiz_id", submissionHandler.Draft)
			submission.GET("/quiz/:quiz_id", submissionHandler.ListByQuiz)
			submission.GET("/_/me", submissionHandler.ListMine)
			submission.PUT("/pause/:id", submissionHandler.Pause)
			submission.PUT("/resume/:id", submissionHandler.Resume)
			submission.PUT("/submit/:id", submissionHandler.Submit)
			submission.GET("/:id", submissionHandler.Get)
		}

		attempt := api.Group("/attempt")
		attempt.Use(auth)
		{
			attempt.POST("/submission/:submission_id/question/:question_id", attemptHandler.Draft)
			attempt.GET("/submission/:submission_id", attemptHandler.ListBySubmission)
			attempt.PUT("/skip/:id", attemptHandler.Skip)
			attempt.PUT("/resume/:id", attemptHandler.Resume)
			attempt.PUT("/submit/:id", attemptHandler.Submit)
			attempt.GET("/:id", attemptHandler.Get)
		}

		solution := api.Group("/solution")
		solution.Use(auth)
		{
			solution.POST("/attempt/:attempt_id/answer/:answer_id", solutionHandler.Add)
			solution.GET("/attempt/:attempt_id", solutionHandler.ListByAttempt)
			solution.GET("/:id", solutionHandler.Get)
			solution.DELETE("/:id", solutionHandler.Delete)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
