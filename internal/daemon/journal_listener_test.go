package daemon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/filesync/internal/journal"
)

type failingJournal struct{ appends int }

func (f *failingJournal) Append(context.Context, journal.Record) error {
	f.appends++
	return errors.New("disk full")
}
func (f *failingJournal) Recent(context.Context, int) ([]journal.Record, error) { return nil, nil }
func (f *failingJournal) Close() error                                         { return nil }

func TestJournalListener_AppendsEveryPass(t *testing.T) {
	store, err := journal.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	f := newFixture(t, nil)
	f.coord.OnPass(JournalListener(store))

	first, err := f.coord.SyncAllNow(t.Context())
	require.NoError(t, err)
	second, err := f.coord.SyncAllNow(t.Context())
	require.NoError(t, err)

	recs, err := store.Recent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.PassID, recs[0].PassID)
	assert.Equal(t, first.PassID, recs[1].PassID)
	assert.Equal(t, 2, recs[0].Copied)
}

func TestJournalListener_FailureDoesNotAffectPass(t *testing.T) {
	fj := &failingJournal{}
	f := newFixture(t, nil)
	f.coord.OnPass(JournalListener(fj))

	sum, err := f.coord.SyncAllNow(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Copied)
	assert.Equal(t, 1, fj.appends)
}
