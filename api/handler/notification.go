package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/api/transport"
	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/pkg/httpcontext"
	"github.com/routineplus/backend/repository"
)

// NotificationHandler stores push registration data. Delivery is handled
// by an external system.
type NotificationHandler struct {
	baseHandler
	tokens repository.PushTokenRepository
}

func NewNotificationHandler(tokens repository.PushTokenRepository, adapter *httpcontext.Adapter, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		tokens:      tokens,
	}
}

// @Summary Register a push notification token
// @Tags notifications
// @Router /api/v1/notifications/token [post]
func (h *NotificationHandler) RegisterToken(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	var req transport.PushTokenRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Token == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "token required", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tokens.Save(stdCtx, ownerID, req.Token); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"token": req.Token})
}
