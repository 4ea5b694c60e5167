package domain

import (
	"iter"
	"strings"
	"time"
)

// Category classifies a task and decides whether weather correlation applies.
type Category string

const (
	CategoryOutdoor  Category = "Ao ar livre"
	CategoryWork     Category = "Trabalho"
	CategoryStudy    Category = "Estudos"
	CategoryPersonal Category = "Pessoal"

	// CategoryAll is the filter wildcard, never stored on a task.
	CategoryAll Category = "all"
)

// IsOutdoor reports whether tasks in this category are subject to weather alerts.
func (c Category) IsOutdoor() bool {
	return c == CategoryOutdoor
}

// Task represents a user-owned obligation. Once completed or deleted the
// record is never mutated again.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Validate checks the fields required at creation time.
func (t *Task) Validate() error {
	if t == nil || strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// FilterTasksByCategory returns a lazy view over tasks matching the category.
// CategoryAll (or the empty string) passes every task through; any other
// value matches by exact, case-sensitive equality. The underlying slice is
// never mutated and the returned sequence can be ranged more than once.
func FilterTasksByCategory(tasks []Task, category Category) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, task := range tasks {
			if category != CategoryAll && category != "" && task.Category != category {
				continue
			}
			if !yield(task) {
				return
			}
		}
	}
}
