package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/internal/infrastructure/drift"
)

type fakeAuditStore struct {
	cutoff   time.Time
	purged   int64
	purgeErr error
}

func (s *fakeAuditStore) Record(ctx context.Context, record *domain.AuditRecord) error { return nil }

func (s *fakeAuditStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.AuditRecord, error) {
	return nil, nil
}

func (s *fakeAuditStore) EnsureRetentionPolicy(ctx context.Context) error { return nil }

func (s *fakeAuditStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	s.cutoff = olderThan
	return s.purged, s.purgeErr
}

func TestSweepPurgesExpiredAuditRecords(t *testing.T) {
	store := &fakeAuditStore{purged: 3}
	sweeper := NewRetentionSweeper(store, nil, zap.NewNop(), SweeperConfig{
		AuditWindow: 864000 * time.Second,
	})

	before := time.Now().UTC().Add(-864000 * time.Second)
	require.NoError(t, sweeper.Sweep(context.Background()))
	after := time.Now().UTC().Add(-864000 * time.Second)

	assert.False(t, store.cutoff.Before(before))
	assert.False(t, store.cutoff.After(after))
}

func TestSweepPropagatesPurgeError(t *testing.T) {
	store := &fakeAuditStore{purgeErr: errors.New("connection refused")}
	sweeper := NewRetentionSweeper(store, nil, zap.NewNop(), SweeperConfig{})

	err := sweeper.Sweep(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestSweepCleansDriftJournal(t *testing.T) {
	journal, err := drift.Open(filepath.Join(t.TempDir(), "drift.db"), "")
	require.NoError(t, err)
	defer journal.Close()

	stale := time.Now().UTC().Add(-40 * 24 * time.Hour)
	require.NoError(t, journal.Append(drift.Entry{TaskID: "stale", RecordedAt: stale}))
	require.NoError(t, journal.Append(drift.Entry{TaskID: "fresh", RecordedAt: time.Now().UTC()}))

	sweeper := NewRetentionSweeper(&fakeAuditStore{}, journal, zap.NewNop(), SweeperConfig{
		DriftRetention: 30 * 24 * time.Hour,
	})
	require.NoError(t, sweeper.Sweep(context.Background()))

	entries, err := journal.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].TaskID)
}

func TestSweeperConfigDefaults(t *testing.T) {
	sweeper := NewRetentionSweeper(&fakeAuditStore{}, nil, nil, SweeperConfig{})

	assert.Equal(t, 864000*time.Second, sweeper.cfg.AuditWindow)
	assert.Equal(t, 30*24*time.Hour, sweeper.cfg.DriftRetention)
	assert.Equal(t, time.Hour, sweeper.cfg.Interval)
}
