package handler

import (
	"net/http"

	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.Overview)
}

// Overview handles GET /api/admin/stats with catalog and community counters.
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, overview)
}
