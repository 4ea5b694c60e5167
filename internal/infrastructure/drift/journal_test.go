package drift

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	journal, err := Open(filepath.Join(t.TempDir(), "drift.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { journal.Close() })
	return journal
}

func TestJournalAppendAndList(t *testing.T) {
	journal := openTestJournal(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"Caminhada", "Relatório", "Compras"} {
		err := journal.Append(Entry{
			OwnerID:    "user-1",
			TaskID:     "t1",
			TaskTitle:  title,
			Action:     "completed",
			Reason:     "audit store down",
			RecordedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := journal.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Caminhada", entries[0].TaskTitle)
	assert.Equal(t, "Compras", entries[2].TaskTitle)
	assert.NotEmpty(t, entries[0].ID)

	size, err := journal.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestJournalListHonorsLimit(t *testing.T) {
	journal := openTestJournal(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, journal.Append(Entry{
			TaskID:     "t1",
			RecordedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := journal.List(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestJournalCleanup(t *testing.T) {
	journal := openTestJournal(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, journal.Append(Entry{TaskID: "old", RecordedAt: base}))
	require.NoError(t, journal.Append(Entry{TaskID: "new", RecordedAt: base.Add(48 * time.Hour)}))

	require.NoError(t, journal.Cleanup(base.Add(time.Hour)))

	entries, err := journal.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].TaskID)
}

func TestJournalClosedHandle(t *testing.T) {
	var journal *Journal
	assert.Error(t, journal.Append(Entry{TaskID: "t1"}))
	_, err := journal.Size()
	assert.Error(t, err)
	assert.NoError(t, journal.Close())
}
