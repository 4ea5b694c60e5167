package repository

import (
	"context"
	"time"

	"github.com/routineplus/backend/domain"
)

// AuditRepository appends and queries immutable audit records. Retention
// is delegated to the store: EnsureRetentionPolicy is invoked once per
// startup (idempotently) and PurgeExpired is driven by the sweeper.
type AuditRepository interface {
	Record(ctx context.Context, record *domain.AuditRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error)
	EnsureRetentionPolicy(ctx context.Context) error
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)
}
