package api

import (
	"net/http"

	resdto "wallet-screening/internal/handler/dto/response"
	usecase "wallet-screening/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	health usecase.HealthUseCase
}

func NewHealthHandler(health usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{health: health}
}

// @Summary Service health
// @Description Reports store reachability, sanctions data freshness and configuration completeness.
// @Tags health
// @Produce json
// @Success 200 {object} resdto.HealthResponse
// @Failure 503 {object} resdto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.health.Check(c.Request.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resdto.FromHealthReport(report))
}
