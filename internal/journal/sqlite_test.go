package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string, finished time.Time, attempted, copied int) Record {
	return Record{
		PassID:     id,
		Trigger:    "manual",
		StartedAt:  finished.Add(-time.Second),
		FinishedAt: finished,
		Attempted:  attempted,
		Copied:     copied,
		Profiles: []ProfileRecord{
			{ProfileID: 1, Attempted: attempted, Copied: copied},
			{ProfileID: 2, Skipped: "no_source"},
		},
	}
}

func TestSQLiteStore_AppendAndRecent(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"p1", "p2", "p3"} {
		require.NoError(t, store.Append(ctx, record(id, base.Add(time.Duration(i)*time.Minute), 2, i)))
	}

	recs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "p3", recs[0].PassID, "newest first")
	assert.Equal(t, "p2", recs[1].PassID)

	got := recs[0]
	assert.Equal(t, "manual", got.Trigger)
	assert.Equal(t, 2, got.Attempted)
	assert.Equal(t, 2, got.Copied)
	assert.Equal(t, 0, got.Failed())
	assert.True(t, got.FinishedAt.Equal(base.Add(2*time.Minute)))
	require.Len(t, got.Profiles, 2)
	assert.Equal(t, "no_source", got.Profiles[1].Skipped)
}

func TestSQLiteStore_RecentDefaultLimit(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	now := time.Now()
	for i := range DefaultLimit + 5 {
		require.NoError(t, store.Append(ctx, record(fmt.Sprintf("pass-%d", i), now, 1, 1)))
	}
	recs, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recs, DefaultLimit)
}

func TestSQLiteStore_DuplicatePassIDRejected(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	require.NoError(t, store.Append(ctx, record("same", time.Now(), 1, 1)))
	assert.Error(t, store.Append(ctx, record("same", time.Now(), 1, 1)))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(t.Context(), record("kept", time.Now(), 3, 2)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	recs, err := reopened.Recent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0].PassID)
	assert.Equal(t, 1, recs[0].Failed())
}

func TestSQLiteStore_EmptyJournal(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	recs, err := store.Recent(t.Context(), 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
