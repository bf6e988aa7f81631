package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type UtilsHandler struct{}

func NewUtilsHandler() *UtilsHandler {
	return &UtilsHandler{}
}

type HealthResponse struct {
	Condition string `json:"condition" example:"healthy"`
}

type ServerTimeResponse struct {
	ServerTime time.Time `json:"server_time"`
}

// Health godoc
// @Summary      Health check
// @Tags         utils
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /api/v1/utils/health [get]
func (h *UtilsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Condition: "healthy"})
}

// Time godoc
// @Summary      Server time
// @Tags         utils
// @Produce      json
// @Success      200 {object} ServerTimeResponse
// @Router       /api/v1/utils/time [get]
func (h *UtilsHandler) Time(c *gin.Context) {
	c.JSON(http.StatusOK, ServerTimeResponse{ServerTime: time.Now().UTC()})
}
