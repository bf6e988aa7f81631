package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Add godoc
// @Summary      Add a question to an unpublished quiz
// @Tags         question
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        quiz_id path string true "Quiz ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      201 {object} models.Question
// @Router       /api/v1/question/quiz/{quiz_id} [post]
func (h *QuestionHandler) Add(c *gin.Context) {
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Add(actorID(c), quizID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// Get godoc
// @Summary      Read a question
// @Tags         question
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Question ID"
// @Success      200 {object} models.Question
// @Router       /api/v1/question/{id} [get]
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	question, err := h.questionService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// ListByQuiz godoc
// @Summary      List the questions of a quiz
// @Tags         question
// @Security     BearerAuth
// @Produce      json
// @Param        quiz_id path string true "Quiz ID"
// @Success      200 {array} models.Question
// @Router       /api/v1/question/quiz/{quiz_id} [get]
func (h *QuestionHandler) ListByQuiz(c *gin.Context) {
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	questions, err := h.questionService.ListByQuiz(actorID(c), quizID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Update godoc
// @Summary      Edit a question of an unpublished quiz
// @Tags         question
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Question ID"
// @Param        request body services.QuestionInput true "Question data"
// @Success      200 {object} models.Question
// @Router       /api/v1/question/{id} [put]
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var input services.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.Update(actorID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete godoc
// @Summary      Delete a question of an unpublished quiz
// @Tags         question
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Question ID"
// @Success      200 {object} models.Question
// @Router       /api/v1/question/{id} [delete]
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	question, err := h.questionService.Delete(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}
