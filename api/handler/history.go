package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/multitimer/backend/api/transport"
	"github.com/multitimer/backend/domain"
	"github.com/multitimer/backend/pkg/httpcontext"
	"github.com/multitimer/backend/usecase/timers"
)

type HistoryHandler struct {
	baseHandler
	store *timers.Store
}

func NewHistoryHandler(store *timers.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// @Summary Completion history, newest first
// @Tags history
// @Router /api/v1/history [get]
func (h *HistoryHandler) GetHistory(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.store.History())
}

// @Summary Record a completion
// @Tags history
// @Router /api/v1/history [post]
func (h *HistoryHandler) RecordCompletion(ctx *fasthttp.RequestCtx) {
	var req transport.HistoryEntryRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	timer, err := h.store.GetTimer(req.TimerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	completedAt := time.Now()
	if req.CompletedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.CompletedAt); err == nil {
			completedAt = parsed
		}
	}

	entry := domain.NewHistoryEntry(timer, completedAt)
	if err := h.store.AddHistoryEntry(entry); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, entry)
}

// @Summary Category labels
// @Tags categories
// @Router /api/v1/categories [get]
func (h *HistoryHandler) GetCategories(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.store.Categories())
}
