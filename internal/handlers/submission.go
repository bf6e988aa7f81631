package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Draft godoc
// @Summary      Start a submission against a quiz
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        quiz_id path string true "Quiz ID"
// @Success      201 {object} models.Submission
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/submission/quiz/{quiz_id} [post]
func (h *SubmissionHandler) Draft(c *gin.Context) {
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	submission, err := h.submissionService.Draft(actorID(c), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// Get godoc
// @Summary      Read a submission
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} models.Submission
// @Router       /api/v1/submission/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	submission, err := h.submissionService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// ListMine godoc
// @Summary      List the current user's submissions
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} models.Submission
// @Router       /api/v1/submission/_/me [get]
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	skip, limit := pagination(c)
	submissions, err := h.submissionService.ListByUser(actorID(c), skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// ListByQuiz godoc
// @Summary      List submissions of a quiz
// @Description  The quiz author sees everyone's finalized submissions; other users see their own.
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        quiz_id path string true "Quiz ID"
// @Success      200 {array} models.Submission
// @Router       /api/v1/submission/quiz/{quiz_id} [get]
func (h *SubmissionHandler) ListByQuiz(c *gin.Context) {
	quizID, ok := pathUUID(c, "quiz_id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	submissions, err := h.submissionService.ListByQuiz(actorID(c), quizID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

// Pause godoc
// @Summary      Pause a draft submission
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} models.Submission
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/submission/pause/{id} [put]
func (h *SubmissionHandler) Pause(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	submission, err := h.submissionService.Pause(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// Resume godoc
// @Summary      Resume a paused submission
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} models.Submission
// @Router       /api/v1/submission/resume/{id} [put]
func (h *SubmissionHandler) Resume(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	submission, err := h.submissionService.Resume(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// Submit godoc
// @Summary      Submit a submission
// @Description  Force-finalizes any draft attempts, then scores the submission as the sum of attempt scores. Irreversible.
// @Tags         submission
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Submission ID"
// @Success      200 {object} models.Submission
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/submission/submit/{id} [put]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	submission, err := h.submissionService.Submit(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
