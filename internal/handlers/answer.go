package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	answerService *services.AnswerService
}

func NewAnswerHandler(answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// Add godoc
// @Summary      Add an answer to a question
// @Description  Point values are assigned by the server: every answer of the same correctness ends up with ±1/(partition size).
// @Tags         answer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        question_id path string true "Question ID"
// @Param        request body services.AnswerCreateInput true "Answer data"
// @Success      201 {object} models.Answer
// @Router       /api/v1/answer/question/{question_id} [post]
func (h *AnswerHandler) Add(c *gin.Context) {
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}
	var input services.AnswerCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.Add(actorID(c), questionID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// Get godoc
// @Summary      Read an answer
// @Tags         answer
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Answer ID"
// @Success      200 {object} models.Answer
// @Router       /api/v1/answer/{id} [get]
func (h *AnswerHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	answer, err := h.answerService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// ListByQuestion godoc
// @Summary      List the answers of a question
// @Tags         answer
// @Security     BearerAuth
// @Produce      json
// @Param        question_id path string true "Question ID"
// @Success      200 {array} models.Answer
// @Router       /api/v1/answer/question/{question_id} [get]
func (h *AnswerHandler) ListByQuestion(c *gin.Context) {
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	answers, err := h.answerService.ListByQuestion(actorID(c), questionID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// Update godoc
// @Summary      Edit an answer's text
// @Tags         answer
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Answer ID"
// @Param        request body services.AnswerUpdateInput true "Answer data"
// @Success      200 {object} models.Answer
// @Router       /api/v1/answer/{id} [put]
func (h *AnswerHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var input services.AnswerUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answer, err := h.answerService.Update(actorID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// Delete godoc
// @Summary      Delete an answer
// @Tags         answer
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Answer ID"
// @Success      200 {object} models.Answer
// @Router       /api/v1/answer/{id} [delete]
func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	answer, err := h.answerService.Delete(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}
