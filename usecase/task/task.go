package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
	"github.com/routineplus/backend/usecase"
)

// auditTimeout bounds the post-mutation audit write. The write runs on a
// context detached from the request so a caller abort between the two
// writes cannot skip the audit attempt.
const auditTimeout = 3 * time.Second

// UseCase drives a task through its lifecycle: Active → Completed or
// Active → Deleted, both terminal. Every terminal transition appends
// exactly one audit record after the mutation is confirmed durable.
type UseCase struct {
	tasks  repository.TaskRepository
	audit  repository.AuditRepository
	drift  usecase.DriftRecorder
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, audit repository.AuditRepository, drift usecase.DriftRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		audit:  audit,
		drift:  drift,
		logger: logger,
		now:    time.Now,
	}
}

// CreateTask validates and persists a new task. Validation failures are
// rejected before any store call.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return uc.tasks.Create(ctx, task)
}

// ListTasks returns the caller's active tasks.
func (uc *UseCase) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return uc.tasks.ListActive(ctx, ownerID)
}

// CompleteTask marks an active task completed and appends the audit
// record. The audit write happens strictly after the mutation; its
// failure does not undo the completion but is journaled as drift.
func (uc *UseCase) CompleteTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	completed, err := uc.tasks.MarkCompleted(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, completed, domain.AuditActionCompleted)
	return completed, nil
}

// DeleteTask removes a task, keeping the pre-deletion snapshot so the
// audit record can reference data that no longer exists in the store.
func (uc *UseCase) DeleteTask(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	snapshot, err := uc.tasks.Delete(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, snapshot, domain.AuditActionDeleted)
	return snapshot, nil
}

// ListHistory returns the caller's audit trail, newest first.
func (uc *UseCase) ListHistory(ctx context.Context, ownerID string) ([]domain.AuditRecord, error) {
	return uc.audit.ListByOwner(ctx, ownerID)
}

func (uc *UseCase) recordAudit(ctx context.Context, task *domain.Task, action domain.AuditAction) {
	record := domain.NewAuditRecord(task, action, uc.now().UTC())

	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()

	err := uc.audit.Record(auditCtx, record)
	if err == nil {
		return
	}

	// The mutation already committed; surface the gap instead of failing
	// the user-visible operation.
	uc.logger.Error("audit record write failed",
		zap.String("task_id", record.TaskID),
		zap.String("action", string(record.Action)),
		zap.Error(domain.WrapError(domain.ErrCodeAuditDrift, domain.ErrAuditWriteFailed.Message, err)))

	if uc.drift == nil {
		return
	}
	if jErr := uc.drift.RecordAuditFailure(auditCtx, record, err); jErr != nil {
		uc.logger.Error("drift journal write failed", zap.Error(jErr))
	}
}
