package repository

import (
	"context"

	"github.com/routineplus/backend/domain"
)

// TaskRepository is the store adapter for user-owned tasks. Every
// owner-scoped operation fails with domain.ErrTaskNotFound when no active
// task matches the (id, owner) pair.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListActive(ctx context.Context, ownerID string) ([]domain.Task, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// MarkCompleted flips the completion flag of a matching active task
	// and returns the updated row.
	MarkCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error)
	// Delete removes a matching task and returns its pre-deletion
	// snapshot so callers can still audit the removed data.
	Delete(ctx context.Context, id, ownerID string) (*domain.Task, error)
}
