package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attemptService *services.AttemptService
}

func NewAttemptHandler(attemptService *services.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// Draft godoc
// @Summary      Start an attempt at a question
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        submission_id path string true "Submission ID"
// @Param        question_id path string true "Question ID"
// @Success      201 {object} models.Attempt
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/attempt/submission/{submission_id}/question/{question_id} [post]
func (h *AttemptHandler) Draft(c *gin.Context) {
	submissionID, ok := pathUUID(c, "submission_id")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "question_id")
	if !ok {
		return
	}
	attempt, err := h.attemptService.Draft(actorID(c), submissionID, questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// Get godoc
// @Summary      Read an attempt
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Attempt ID"
// @Success      200 {object} models.Attempt
// @Router       /api/v1/attempt/{id} [get]
func (h *AttemptHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	attempt, err := h.attemptService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// ListBySubmission godoc
// @Summary      List the attempts of a submission
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        submission_id path string true "Submission ID"
// @Success      200 {array} models.Attempt
// @Router       /api/v1/attempt/submission/{submission_id} [get]
func (h *AttemptHandler) ListBySubmission(c *gin.Context) {
	submissionID, ok := pathUUID(c, "submission_id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	attempts, err := h.attemptService.ListBySubmission(actorID(c), submissionID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// Skip godoc
// @Summary      Skip a draft attempt
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Attempt ID"
// @Success      200 {object} models.Attempt
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/attempt/skip/{id} [put]
func (h *AttemptHandler) Skip(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	attempt, err := h.attemptService.Skip(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// Resume godoc
// @Summary      Resume a skipped attempt
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Attempt ID"
// @Success      200 {object} models.Attempt
// @Router       /api/v1/attempt/resume/{id} [put]
func (h *AttemptHandler) Resume(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	attempt, err := h.attemptService.Resume(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// Submit godoc
// @Summary      Submit an attempt
// @Description  Scores the attempt as the sum of its selected answer points. Irreversible.
// @Tags         attempt
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Attempt ID"
// @Success      200 {object} models.Attempt
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/attempt/submit/{id} [put]
func (h *AttemptHandler) Submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	attempt, err := h.attemptService.Submit(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}
