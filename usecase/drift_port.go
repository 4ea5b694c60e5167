package usecase

import (
	"context"

	"github.com/routineplus/backend/domain"
)

// DriftRecorder abstracts the drift journal so use cases stay
// storage-agnostic. It receives audit records that could not be written
// after their task mutation had already committed.
type DriftRecorder interface {
	RecordAuditFailure(ctx context.Context, record *domain.AuditRecord, cause error) error
}
