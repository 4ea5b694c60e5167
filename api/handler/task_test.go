package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/api/transport"
	"github.com/routineplus/backend/domain"
	taskUC "github.com/routineplus/backend/usecase/task"
)

type memoryTaskRepo struct {
	tasks map[string]domain.Task
	seq   int
}

func newMemoryTaskRepo() *memoryTaskRepo {
	return &memoryTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *memoryTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	r.seq++
	task.ID = string(rune('0' + r.seq))
	task.CreatedAt = time.Now()
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *memoryTaskRepo) ListActive(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && !task.IsCompleted {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memoryTaskRepo) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memoryTaskRepo) MarkCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID || task.IsCompleted {
		return nil, domain.ErrTaskNotFound
	}
	task.IsCompleted = true
	r.tasks[id] = task
	return &task, nil
}

func (r *memoryTaskRepo) Delete(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return &task, nil
}

type memoryAuditRepo struct {
	records []domain.AuditRecord
}

func (r *memoryAuditRepo) Record(ctx context.Context, record *domain.AuditRecord) error {
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryAuditRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error) {
	return r.records, nil
}

func (r *memoryAuditRepo) EnsureRetentionPolicy(ctx context.Context) error { return nil }

func (r *memoryAuditRepo) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func newTestHandler() (*TaskHandler, *memoryTaskRepo) {
	repo := newMemoryTaskRepo()
	uc := taskUC.New(repo, &memoryAuditRepo{}, nil, zap.NewNop())
	return NewTaskHandler(uc, nil, nil, zap.NewNop()), repo
}

func newRequestCtx(method, uri, userID string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if userID != "" {
		ctx.Request.Header.Set("X-User-ID", userID)
	}
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) transport.Envelope {
	t.Helper()
	var envelope transport.Envelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &envelope))
	return envelope
}

func TestGetTasks(t *testing.T) {
	t.Run("requires caller identity", func(t *testing.T) {
		h, _ := newTestHandler()
		ctx := newRequestCtx(http.MethodGet, "/api/v1/tasks", "", nil)

		h.GetTasks(ctx)

		assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	})

	t.Run("filters by category", func(t *testing.T) {
		h, repo := newTestHandler()
		repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Caminhada", Category: domain.CategoryOutdoor})
		repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Relatório", Category: domain.CategoryWork})

		ctx := newRequestCtx(http.MethodGet, "/api/v1/tasks?category=Trabalho", "u1", nil)
		h.GetTasks(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		envelope := decodeEnvelope(t, ctx)
		payload, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(payload, &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, "Relatório", tasks[0].Title)
	})

	t.Run("category all passes everything", func(t *testing.T) {
		h, repo := newTestHandler()
		repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Caminhada", Category: domain.CategoryOutdoor})
		repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Relatório", Category: domain.CategoryWork})

		ctx := newRequestCtx(http.MethodGet, "/api/v1/tasks?category=all", "u1", nil)
		h.GetTasks(ctx)

		envelope := decodeEnvelope(t, ctx)
		payload, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var tasks []domain.Task
		require.NoError(t, json.Unmarshal(payload, &tasks))
		assert.Len(t, tasks, 2)
	})
}

func TestCreateTask(t *testing.T) {
	t.Run("creates from a valid payload", func(t *testing.T) {
		h, repo := newTestHandler()
		body, _ := json.Marshal(transport.TaskRequest{
			Title:    "Caminhada",
			Category: string(domain.CategoryOutdoor),
			DueAt:    "2026-09-01T10:00:00Z",
		})
		ctx := newRequestCtx(http.MethodPost, "/api/v1/tasks", "u1", body)

		h.CreateTask(ctx)

		assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
		require.Len(t, repo.tasks, 1)
		for _, task := range repo.tasks {
			assert.Equal(t, "u1", task.OwnerID)
			require.NotNil(t, task.DueAt)
			assert.Equal(t, 2026, task.DueAt.Year())
		}
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		h, repo := newTestHandler()
		body, _ := json.Marshal(transport.TaskRequest{Title: "   "})
		ctx := newRequestCtx(http.MethodPost, "/api/v1/tasks", "u1", body)

		h.CreateTask(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
		assert.Empty(t, repo.tasks)
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		h, _ := newTestHandler()
		ctx := newRequestCtx(http.MethodPost, "/api/v1/tasks", "u1", []byte("{not json"))

		h.CreateTask(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestCompleteAndDeleteTask(t *testing.T) {
	t.Run("completes an owned task", func(t *testing.T) {
		h, repo := newTestHandler()
		created, _ := repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Caminhada"})

		ctx := newRequestCtx(http.MethodPost, "/api/v1/tasks/1/complete", "u1", nil)
		ctx.SetUserValue("id", created.ID)
		h.CompleteTask(ctx)

		assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		assert.True(t, repo.tasks[created.ID].IsCompleted)
	})

	t.Run("unknown task yields 404", func(t *testing.T) {
		h, _ := newTestHandler()
		ctx := newRequestCtx(http.MethodPost, "/api/v1/tasks/missing/complete", "u1", nil)
		ctx.SetUserValue("id", "missing")

		h.CompleteTask(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("foreign task yields 404, not 403", func(t *testing.T) {
		h, repo := newTestHandler()
		created, _ := repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Caminhada"})

		ctx := newRequestCtx(fasthttp.MethodDelete, "/api/v1/tasks/1", "u2", nil)
		ctx.SetUserValue("id", created.ID)
		h.DeleteTask(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("delete returns 204", func(t *testing.T) {
		h, repo := newTestHandler()
		created, _ := repo.Create(context.Background(), &domain.Task{OwnerID: "u1", Title: "Caminhada"})

		ctx := newRequestCtx(fasthttp.MethodDelete, "/api/v1/tasks/1", "u1", nil)
		ctx.SetUserValue("id", created.ID)
		h.DeleteTask(ctx)

		assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
		assert.Empty(t, repo.tasks)
	})
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound},
		{"invalid", domain.ErrTitleRequired, http.StatusBadRequest},
		{"unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			assert.Equal(t, tc.status, status)
		})
	}
}
