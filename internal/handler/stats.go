package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foresight/internal/service"
)

type StatsHandler struct {
	Service *service.StatsService
	Logger  *zap.Logger
}

func (h *StatsHandler) Register(r *gin.Engine) {
	r.GET("/api/stats", h.overview)
}

// @Summary Aggregate accuracy statistics
// @Tags stats
// @Success 200 {object} map[string]any
// @Router /api/stats [get]
func (h *StatsHandler) overview(c *gin.Context) {
	overview, err := h.Service.Overview(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("stats overview failed", zap.Error(err))
		}
		Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	Ok(c, overview, nil)
}
