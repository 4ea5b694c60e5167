package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.IsCompleted = false

	const query = `
	INSERT INTO tasks (id, owner_id, title, description, category, due_at, is_completed)
	VALUES ($1, $2, $3, $4, $5, $6, FALSE)
	RETURNING created_at
	`

	var due interface{}
	if task.DueAt != nil {
		due = *task.DueAt
	}

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		string(task.Category),
		due,
	).Scan(&task.CreatedAt); err != nil {
		return nil, storeErr("insert task", err)
	}

	return task, nil
}

func (r *taskRepository) ListActive(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
	SELECT id, owner_id, title, description, category, due_at, is_completed, created_at
	FROM tasks
	WHERE owner_id = $1 AND is_completed = FALSE
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list tasks", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	SELECT id, owner_id, title, description, category, due_at, is_completed, created_at
	FROM tasks
	WHERE id = $1 AND owner_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *taskRepository) MarkCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET is_completed = TRUE
	WHERE id = $1 AND owner_id = $2 AND is_completed = FALSE
	RETURNING id, owner_id, title, description, category, due_at, is_completed, created_at
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	DELETE FROM tasks
	WHERE id = $1 AND owner_id = $2
	RETURNING id, owner_id, title, description, category, due_at, is_completed, created_at
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task     domain.Task
		category string
		due      *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&category,
		&due,
		&task.IsCompleted,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, storeErr("scan task", err)
	}

	task.Category = domain.Category(category)
	task.DueAt = due
	return &task, nil
}

func storeErr(op string, err error) error {
	return domain.WrapError(domain.ErrCodeUnavailable, op+" failed", err)
}
