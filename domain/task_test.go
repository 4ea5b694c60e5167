package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routineplus/backend/domain"
)

func TestTaskValidate(t *testing.T) {
	t.Run("accepts a titled task", func(t *testing.T) {
		task := &domain.Task{Title: "Caminhada", Category: domain.CategoryOutdoor}
		require.NoError(t, task.Validate())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		task := &domain.Task{Title: ""}
		assert.ErrorIs(t, task.Validate(), domain.ErrTitleRequired)
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		task := &domain.Task{Title: "   \t "}
		assert.ErrorIs(t, task.Validate(), domain.ErrTitleRequired)
	})

	t.Run("rejects nil task", func(t *testing.T) {
		var task *domain.Task
		assert.ErrorIs(t, task.Validate(), domain.ErrTitleRequired)
	})
}

func TestCategoryIsOutdoor(t *testing.T) {
	assert.True(t, domain.CategoryOutdoor.IsOutdoor())
	assert.False(t, domain.CategoryWork.IsOutdoor())
	assert.False(t, domain.Category("ao ar livre").IsOutdoor())
	assert.False(t, domain.Category("").IsOutdoor())
}

func TestFilterTasksByCategory(t *testing.T) {
	due := time.Now().Add(time.Hour)
	tasks := []domain.Task{
		{ID: "1", Title: "Caminhada", Category: domain.CategoryOutdoor, DueAt: &due},
		{ID: "2", Title: "Relatório", Category: domain.CategoryWork},
		{ID: "3", Title: "Corrida", Category: domain.CategoryOutdoor},
	}

	collect := func(category domain.Category) []domain.Task {
		var out []domain.Task
		for task := range domain.FilterTasksByCategory(tasks, category) {
			out = append(out, task)
		}
		return out
	}

	t.Run("all passes every task unchanged", func(t *testing.T) {
		got := collect(domain.CategoryAll)
		require.Len(t, got, 3)
		assert.Equal(t, tasks, got)
	})

	t.Run("empty category behaves like all", func(t *testing.T) {
		assert.Len(t, collect(""), 3)
	})

	t.Run("exact category match", func(t *testing.T) {
		got := collect(domain.CategoryOutdoor)
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "3", got[1].ID)
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		assert.Empty(t, collect(domain.Category("ao ar livre")))
	})

	t.Run("empty result is valid", func(t *testing.T) {
		assert.Empty(t, collect(domain.CategoryStudy))
	})

	t.Run("view is restartable and does not mutate", func(t *testing.T) {
		view := domain.FilterTasksByCategory(tasks, domain.CategoryOutdoor)
		first, second := 0, 0
		for range view {
			first++
		}
		for range view {
			second++
		}
		assert.Equal(t, first, second)
		assert.Equal(t, "Relatório", tasks[1].Title)
	})

	t.Run("early break stops the sequence", func(t *testing.T) {
		seen := 0
		for range domain.FilterTasksByCategory(tasks, domain.CategoryAll) {
			seen++
			break
		}
		assert.Equal(t, 1, seen)
	})
}
