package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create godoc
// @Summary      Create a quiz
// @Tags         quiz
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body services.QuizInput true "Quiz data"
// @Success      201 {object} models.Quiz
// @Router       /api/v1/quiz [post]
func (h *QuizHandler) Create(c *gin.Context) {
	var input services.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Create(actorID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// Get godoc
// @Summary      Read a quiz
// @Tags         quiz
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Success      200 {object} models.Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/quiz/{id} [get]
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	quiz, err := h.quizService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// ListMine godoc
// @Summary      List quizzes authored by the current user
// @Tags         quiz
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} models.Quiz
// @Router       /api/v1/quiz/_/me [get]
func (h *QuizHandler) ListMine(c *gin.Context) {
	skip, limit := pagination(c)
	quizzes, err := h.quizService.ListByAuthor(actorID(c), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// ListPublished godoc
// @Summary      List published quizzes
// @Tags         quiz
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} models.Quiz
// @Router       /api/v1/quiz/_/published [get]
func (h *QuizHandler) ListPublished(c *gin.Context) {
	skip, limit := pagination(c)
	quizzes, err := h.quizService.ListPublished(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// Update godoc
// @Summary      Edit an unpublished quiz
// @Tags         quiz
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Param        request body services.QuizInput true "Quiz data"
// @Success      200 {object} models.Quiz
// @Router       /api/v1/quiz/{id} [put]
func (h *QuizHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var input services.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Update(actorID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Publish godoc
// @Summary      Publish a quiz
// @Description  Irreversibly publishes the quiz once its question and answer counts fit the configured bounds.
// @Tags         quiz
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Success      200 {object} models.Quiz
// @Failure      412 {object} ErrorResponse
// @Router       /api/v1/quiz/publish/{id} [put]
func (h *QuizHandler) Publish(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	quiz, err := h.quizService.Publish(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

// Delete godoc
// @Summary      Delete a quiz and everything under it
// @Tags         quiz
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Success      200 {object} models.Quiz
// @Router       /api/v1/quiz/{id} [delete]
func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	quiz, err := h.quizService.Delete(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}
