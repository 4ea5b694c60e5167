package drift

import (
	"time"

	"github.com/google/uuid"
)

// Entry records one committed task mutation whose audit insert failed.
type Entry struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TaskID     string    `json:"task_id"`
	TaskTitle  string    `json:"task_title"`
	Action     string    `json:"action"`
	Reason     string    `json:"reason"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
}
