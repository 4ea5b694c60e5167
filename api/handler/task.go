package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/api/transport"
	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/pkg/httpcontext"
	taskUC "github.com/routineplus/backend/usecase/task"
	weatherUC "github.com/routineplus/backend/usecase/weather"
)

type TaskHandler struct {
	baseHandler
	uc      *taskUC.UseCase
	weather *weatherUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, weather *weatherUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
		weather:     weather,
	}
}

// @Summary List active tasks, optionally filtered by category
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, ownerID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	category := domain.Category(ctx.QueryArgs().Peek("category"))
	filtered := make([]domain.Task, 0, len(tasks))
	for task := range domain.FilterTasksByCategory(tasks, category) {
		filtered = append(filtered, task)
	}
	h.respondSuccess(ctx, http.StatusOK, filtered)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	task, ok := h.parseTask(ctx, ownerID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Complete task
// @Tags tasks
// @Router /api/v1/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	completed, err := h.uc.CompleteTask(stdCtx, ownerID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, completed)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.DeleteTask(stdCtx, ownerID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Weather alerts for the caller's outdoor tasks
// @Tags tasks
// @Router /api/v1/tasks/alerts [get]
func (h *TaskHandler) GetAlerts(ctx *fasthttp.RequestCtx) {
	ownerID := h.ownerID(ctx)
	if ownerID == "" {
		return
	}

	city := string(ctx.QueryArgs().Peek("city"))
	if city == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "city required", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	alerts, err := h.weather.AlertsForOwner(stdCtx, ownerID, city)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if alerts == nil {
		alerts = []domain.WeatherAlert{}
	}
	h.respondSuccess(ctx, http.StatusOK, alerts)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx, ownerID string) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	var due *time.Time
	if req.DueAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.DueAt); err == nil {
			due = &parsed
		}
	}

	return &domain.Task{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		DueAt:       due,
	}, true
}
