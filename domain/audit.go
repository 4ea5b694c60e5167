package domain

import "time"

// AuditAction identifies a terminal task transition.
type AuditAction string

const (
	AuditActionCompleted AuditAction = "completed"
	AuditActionDeleted   AuditAction = "deleted"
)

// AuditRecord is an immutable fact describing a terminal transition.
// TaskTitle is snapshotted at the moment of the action so the record
// survives the source task's deletion. CreatedAt drives retention:
// records older than the configured window are purged automatically.
type AuditRecord struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"task_id"`
	TaskTitle string      `json:"task_title"`
	OwnerID   string      `json:"owner_id"`
	Action    AuditAction `json:"action"`
	ActionAt  time.Time   `json:"action_at"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewAuditRecord snapshots the task state into an audit record. The title
// is taken from the argument, never re-fetched from the store.
func NewAuditRecord(task *Task, action AuditAction, now time.Time) *AuditRecord {
	if task == nil {
		return nil
	}
	return &AuditRecord{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		OwnerID:   task.OwnerID,
		Action:    action,
		ActionAt:  now,
		CreatedAt: now,
	}
}

// Expired reports whether the record has outlived the retention window.
func (r *AuditRecord) Expired(window time.Duration, reference time.Time) bool {
	if r == nil {
		return false
	}
	return reference.Sub(r.CreatedAt) >= window
}

// DefaultAuditRetention matches the 10-day expiry of the history collection.
const DefaultAuditRetention = 864000 * time.Second
