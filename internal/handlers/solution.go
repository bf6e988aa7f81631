package handlers

import (
	"net/http"

	"github.com/MasiCal354/quizar/internal/services"

	"github.com/gin-gonic/gin"
)

type SolutionHandler struct {
	solutionService *services.SolutionService
}

func NewSolutionHandler(solutionService *services.SolutionService) *SolutionHandler {
	return &SolutionHandler{solutionService: solutionService}
}

// Add godoc
// @Summary      Select an answer within an attempt
// @Description  Snapshots the answer's current point onto the solution.
// @Tags         solution
// @Security     BearerAuth
// @Produce      json
// @Param        attempt_id path string true "Attempt ID"
// @Param        answer_id path string true "Answer ID"
// @Success      201 {object} models.Solution
// @Failure      422 {object} ErrorResponse
// @Router       /api/v1/solution/attempt/{attempt_id}/answer/{answer_id} [post]
func (h *SolutionHandler) Add(c *gin.Context) {
	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}
	answerID, ok := pathUUID(c, "answer_id")
	if !ok {
		return
	}
	solution, err := h.solutionService.Add(actorID(c), attemptID, answerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, solution)
}

// Get godoc
// @Summary      Read a solution
// @Tags         solution
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Solution ID"
// @Success      200 {object} models.Solution
// @Router       /api/v1/solution/{id} [get]
func (h *SolutionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	solution, err := h.solutionService.Get(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, solution)
}

// ListByAttempt godoc
// @Summary      List the solutions of an attempt
// @Tags         solution
// @Security     BearerAuth
// @Produce      json
// @Param        attempt_id path string true "Attempt ID"
// @Success      200 {array} models.Solution
// @Router       /api/v1/solution/attempt/{attempt_id} [get]
func (h *SolutionHandler) ListByAttempt(c *gin.Context) {
	attemptID, ok := pathUUID(c, "attempt_id")
	if !ok {
		return
	}
	skip, limit := pagination(c)
	solutions, err := h.solutionService.ListByAttempt(actorID(c), attemptID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// Delete godoc
// @Summary      Unselect an answer
// @Tags         solution
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Solution ID"
// @Success      200 {object} models.Solution
// @Router       /api/v1/solution/{id} [delete]
func (h *SolutionHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	solution, err := h.solutionService.Delete(actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, solution)
}
