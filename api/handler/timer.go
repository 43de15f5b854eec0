package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/multitimer/backend/api/transport"
	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/pkg/httpcontext"
	"github.com/multitimer/backend/pkg/logger"
	"github.com/multitimer/backend/usecase/timers"
)

type TimerHandler struct {
	baseHandler
	store *timers.Store
}

func NewTimerHandler(store *timers.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *TimerHandler {
	return &TimerHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary List timers
// @Tags timers
// @Router /api/v1/timers [get]
func (h *TimerHandler) GetTimers(ctx *fasthttp.RequestCtx) {
	filter := timers.Filter{
		Category:         string(ctx.QueryArgs().Peek("category")),
		Status:           domain.Status(ctx.QueryArgs().Peek("status")),
		IncludeCompleted: ctx.QueryArgs().GetBool("include_completed"),
	}
	h.respondSuccess(ctx, http.StatusOK, h.store.Timers(filter))
}

// @Summary Add timer
// @Tags timers
// @Router /api/v1/timers [post]
func (h *TimerHandler) AddTimer(ctx *fasthttp.RequestCtx) {
	var req transport.TimerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	timer, err := h.store.AddTimer(timers.AddSpec{
		Name:               req.Name,
		Category:           req.Category,
		Duration:           req.Duration,
		EnableHalfwayAlert: req.EnableHalfwayAlert,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	logger.WithRequestID(stdCtx, h.logger).Info("timer added",
		zap.String("timer_id", timer.ID),
		zap.String("category", timer.Category),
		zap.Int("duration", timer.Duration))
	h.respondSuccess(ctx, http.StatusCreated, timer)
}

// @Summary Replace timer
// @Tags timers
// @Router /api/v1/timers/{id} [put]
func (h *TimerHandler) UpdateTimer(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	var req transport.TimerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}
	if req.ID == "" {
		req.ID = id
	}

	current, err := h.store.GetTimer(req.ID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// Whole-record replace, last write wins. Creation-time fields that the
	// request omits fall back to the stored record.
	next := current
	next.Name = req.Name
	next.Category = req.Category
	next.EnableHalfwayAlert = req.EnableHalfwayAlert
	if req.Duration > 0 {
		next.Duration = req.Duration
	}
	if req.RemainingTime != nil {
		next.RemainingTime = *req.RemainingTime
	}
	if req.Status != "" {
		next.Status = domain.Status(req.Status)
	}
	if err := next.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	updated, err := h.store.UpdateTimer(next)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete timer
// @Tags timers
// @Router /api/v1/timers/{id} [delete]
func (h *TimerHandler) DeleteTimer(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing timer id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.store.DeleteTimer(id)
	logger.WithRequestID(stdCtx, h.logger).Info("timer deleted", zap.String("timer_id", id))
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Start or pause timer
// @Tags timers
// @Router /api/v1/timers/{id}/toggle [post]
func (h *TimerHandler) ToggleTimer(ctx *fasthttp.RequestCtx) {
	h.applyLifecycle(ctx, h.store.Toggle)
}

// @Summary Reset timer
// @Tags timers
// @Router /api/v1/timers/{id}/reset [post]
func (h *TimerHandler) ResetTimer(ctx *fasthttp.RequestCtx) {
	h.applyLifecycle(ctx, h.store.Reset)
}

func (h *TimerHandler) applyLifecycle(ctx *fasthttp.RequestCtx, op func(string) (domain.Timer, error)) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing timer id", nil))
		return
	}
	timer, err := op(id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, timer)
}

// @Summary Patch many timers
// @Tags timers
// @Router /api/v1/timers/batch [post]
func (h *TimerHandler) BatchUpdate(ctx *fasthttp.RequestCtx) {
	var req transport.BatchUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.IDs) == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	patch := timers.Patch{
		Name:               req.Patch.Name,
		Category:           req.Patch.Category,
		RemainingTime:      req.Patch.RemainingTime,
		EnableHalfwayAlert: req.Patch.EnableHalfwayAlert,
		RestoreRemaining:   req.Patch.RestoreRemaining,
	}
	if req.Patch.Status != nil {
		status := domain.Status(*req.Patch.Status)
		patch.Status = &status
	}

	touched := h.store.UpdateMany(req.IDs, patch)
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"updated": touched})
}

// @Summary Start, pause, or reset all timers in a category
// @Tags timers
// @Router /api/v1/categories/{name}/{action} [post]
func (h *TimerHandler) CategoryAction(ctx *fasthttp.RequestCtx) {
	name, _ := ctx.UserValue("name").(string)
	action, _ := ctx.UserValue("action").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	touched, err := h.store.ApplyCategoryAction(name, timers.CategoryAction(action))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	logger.WithRequestID(stdCtx, h.logger).Info("category action applied",
		zap.String("category", name),
		zap.String("action", action),
		zap.Int("updated", touched))
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"updated": touched})
}
