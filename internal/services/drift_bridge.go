package services

import (
	"context"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/internal/infrastructure/drift"
	"github.com/routineplus/backend/usecase"
)

// DriftBridge adapts the bbolt journal to the use-case port.
type DriftBridge struct {
	journal *drift.Journal
}

func NewDriftBridge(journal *drift.Journal) *DriftBridge {
	return &DriftBridge{journal: journal}
}

func (b *DriftBridge) RecordAuditFailure(ctx context.Context, record *domain.AuditRecord, cause error) error {
	if b.journal == nil || record == nil {
		return domain.ErrInvalidPayload
	}
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return b.journal.Append(drift.Entry{
		OwnerID:    record.OwnerID,
		TaskID:     record.TaskID,
		TaskTitle:  record.TaskTitle,
		Action:     string(record.Action),
		Reason:     reason,
		RecordedAt: record.ActionAt,
	})
}

var _ usecase.DriftRecorder = (*DriftBridge)(nil)
