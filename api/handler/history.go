package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/pkg/httpcontext"
	taskUC "github.com/routineplus/backend/usecase/task"
)

type HistoryHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewHistoryHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Audit trail for the caller, newest first
// @Tags history
// @Router /api/v1/history [get]
func (h *HistoryHandler) GetHistory(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	records, err := h.uc.ListHistory(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if records == nil {
		records = []domain.AuditRecord{}
	}
	h.respondSuccess(ctx, http.StatusOK, records)
}
