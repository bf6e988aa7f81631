package handlers

import (
	"net/http"
	"strconv"

	"github.com/MasiCal354/quizar/internal/apperr"
	"github.com/MasiCal354/quizar/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondError maps each error kind to its response status. Unknown errors
// never leak their message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindInvalidTransition:
		status = http.StatusConflict
	case apperr.KindPublishPrecondition:
		status = http.StatusPreconditionFailed
	case apperr.KindConstraintViolation:
		status = http.StatusUnprocessableEntity
	case apperr.KindInvalidDuration:
		status = http.StatusBadRequest
	default:
		message = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: message})
}

// actorID returns the authenticated user id set by the JWT middleware.
func actorID(c *gin.Context) uuid.UUID {
	return c.MustGet(middleware.ContextUserID).(uuid.UUID)
}

// pathUUID parses a path parameter as UUID, responding 404 on garbage ids so
// malformed and missing resources are indistinguishable.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: name + " not found"})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads skip/limit query parameters with the store defaults.
func pagination(c *gin.Context) (int, int) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	return skip, limit
}
