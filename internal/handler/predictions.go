package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foresight/internal/abuse"
	"foresight/internal/models"
	"foresight/internal/repository"
	"foresight/internal/service"
	"foresight/internal/validate"
)

type PredictionHandler struct {
	Service *service.PredictionService
	Bot     *abuse.BotChecker
	Logger  *zap.Logger
}

func (h *PredictionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/predictions")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.POST("/:id/verify", h.verify)
}

// @Summary List predictions
// @Tags predictions
// @Param category query string false "category filter"
// @Param status query string false "derived status filter (pending|overdue|verified)"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} map[string]any
// @Router /api/predictions [get]
func (h *PredictionHandler) list(c *gin.Context) {
	category := strQuery(c, "category")
	if category != "" && !models.ValidCategory(category) {
		ValidationError(c, []string{"unknown category"})
		return
	}
	status := strQuery(c, "status")
	if status != "" && !models.ValidStatus(status) {
		ValidationError(c, []string{"unknown status"})
		return
	}

	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	views, total, err := h.Service.List(c.Request.Context(), service.ListParams{
		Category: category,
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.serverError(c, "list predictions failed", err)
		return
	}
	Ok(c, views, paginationMeta(limit, offset, total))
}

// @Summary Fetch one prediction with its verification
// @Tags predictions
// @Param id path int true "prediction id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/predictions/{id} [get]
func (h *PredictionHandler) get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid prediction id", nil)
		return
	}
	view, err := h.Service.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}
	if err != nil {
		h.serverError(c, "get prediction failed", err)
		return
	}
	Ok(c, view, nil)
}

// @Summary Submit a prediction
// @Tags predictions
// @Accept json
// @Param request body validate.PredictionRequest true "submission"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /api/predictions [post]
func (h *PredictionHandler) create(c *gin.Context) {
	var req validate.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if h.rejectBots(c, req.Website, req.FormStartedAt) {
		return
	}

	view, msgs, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.serverError(c, "create prediction failed", err)
		return
	}
	if len(msgs) > 0 {
		ValidationError(c, msgs)
		return
	}
	Ok(c, view, nil)
}

// @Summary Attach a verification outcome to a prediction
// @Tags predictions
// @Accept json
// @Param id path int true "prediction id"
// @Param request body validate.VerificationRequest true "verification"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/predictions/{id}/verify [post]
func (h *PredictionHandler) verify(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		Error(c, http.StatusBadRequest, "invalid prediction id", nil)
		return
	}
	var req validate.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if h.rejectBots(c, req.Website, req.FormStartedAt) {
		return
	}

	item, msgs, err := h.Service.Verify(c.Request.Context(), id, req)
	if errors.Is(err, repository.ErrNotFound) {
		Error(c, http.StatusNotFound, "prediction not found", nil)
		return
	}
	if errors.Is(err, service.ErrAlreadyVerified) {
		ValidationError(c, []string{"prediction already has a verification"})
		return
	}
	if err != nil {
		h.serverError(c, "create verification failed", err)
		return
	}
	if len(msgs) > 0 {
		ValidationError(c, msgs)
		return
	}
	Ok(c, item, nil)
}

// rejectBots runs the body-dependent abuse checks. The response stays
// generic on purpose.
func (h *PredictionHandler) rejectBots(c *gin.Context, honeypot string, startedAt int64) bool {
	if h.Bot == nil {
		return false
	}
	err := h.Bot.Check(abuse.Submission{
		Honeypot:      honeypot,
		FormStartedAt: startedAt,
		UserAgent:     c.Request.UserAgent(),
	}, time.Now())
	if err == nil {
		return false
	}
	if h.Logger != nil {
		h.Logger.Info("submission rejected",
			zap.String("ip", c.ClientIP()),
			zap.String("reason", err.Error()),
		)
	}
	Error(c, http.StatusForbidden, "request rejected", nil)
	return true
}

func (h *PredictionHandler) bindError(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		Error(c, http.StatusRequestEntityTooLarge, "request body too large", nil)
		return
	}
	Error(c, http.StatusBadRequest, "invalid request body", nil)
}

func (h *PredictionHandler) serverError(c *gin.Context, msg string, err error) {
	if h.Logger != nil {
		h.Logger.Error(msg, zap.Error(err))
	}
	Error(c, http.StatusInternalServerError, "internal error", nil)
}
