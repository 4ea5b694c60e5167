package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation of AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) repository.AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, record *domain.AuditRecord) error {
	if record == nil {
		return domain.ErrInvalidPayload
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO task_audit (id, task_id, task_title, owner_id, action, action_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := r.pool.Exec(ctx, query,
		record.ID,
		record.TaskID,
		record.TaskTitle,
		record.OwnerID,
		string(record.Action),
		record.ActionAt,
		record.CreatedAt,
	); err != nil {
		return storeErr("insert audit record", err)
	}
	return nil
}

func (r *auditRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error) {
	const query = `
	SELECT id, task_id, task_title, owner_id, action, action_at, created_at
	FROM task_audit
	WHERE owner_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list audit records", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var (
			record domain.AuditRecord
			action string
		)
		if err := rows.Scan(
			&record.ID,
			&record.TaskID,
			&record.TaskTitle,
			&record.OwnerID,
			&action,
			&record.ActionAt,
			&record.CreatedAt,
		); err != nil {
			return nil, storeErr("scan audit record", err)
		}
		record.Action = domain.AuditAction(action)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list audit records", err)
	}
	return records, nil
}

// EnsureRetentionPolicy creates the index backing age-based expiry. Safe to
// invoke on every restart.
func (r *auditRepository) EnsureRetentionPolicy(ctx context.Context) error {
	const query = `CREATE INDEX IF NOT EXISTS idx_task_audit_created_at ON task_audit (created_at)`
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return storeErr("ensure retention policy", err)
	}
	return nil
}

func (r *auditRepository) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	const query = `DELETE FROM task_audit WHERE created_at < $1`
	tag, err := r.pool.Exec(ctx, query, olderThan)
	if err != nil {
		return 0, storeErr("purge audit records", err)
	}
	return tag.RowsAffected(), nil
}
